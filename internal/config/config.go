// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for chartpad.
//
// Configuration file location (in order of precedence):
//   - Environment variables (CHARTPAD_*)
//   - ~/.chartpad/config.toml
//   - Built-in defaults
package config

import (
	"bytes"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/chartpad/internal/modal"
	"github.com/jeranaias/chartpad/internal/patient"
	"github.com/jeranaias/chartpad/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete chartpad configuration.
type Config struct {
	Version string `toml:"version"`

	// Patient the note is written about
	Patient PatientConfig `toml:"patient"`

	// Clinical vocabulary file
	Vocabulary VocabularyConfig `toml:"vocabulary"`

	// AI generation backend
	Generation GenerationConfig `toml:"generation"`

	// Modal form defaults
	Appointment AppointmentConfig `toml:"appointment"`
	Order       OrderConfig       `toml:"order"`

	Log LogConfig `toml:"log"`
	UI  UIConfig  `toml:"ui"`
}

// PatientConfig describes the patient context.
type PatientConfig struct {
	Name string `toml:"name"`
	// DOB is YYYY-MM-DD
	DOB string `toml:"dob"`
	// Age is derived from DOB when zero
	Age              int          `toml:"age"`
	Gender           string       `toml:"gender"`
	MRN              string       `toml:"mrn"`
	EmergencyContact string       `toml:"emergency_contact"`
	Vitals           VitalsConfig `toml:"vitals"`
}

// VitalsConfig holds the vital-sign strings.
type VitalsConfig struct {
	BP     string `toml:"bp"`
	HR     string `toml:"hr"`
	Temp   string `toml:"temp"`
	SpO2   string `toml:"spo2"`
	Weight string `toml:"weight"`
}

// VocabularyConfig points at an optional vocabulary file.
type VocabularyConfig struct {
	// File is a TOML vocabulary file (empty = built-in vocabulary only)
	File string `toml:"file"`
	// Watch reloads the file when it changes
	Watch bool `toml:"watch"`
	// DebounceMS is the quiet period before a reload
	DebounceMS int `toml:"debounce_ms"`
}

// GenerationConfig configures the generation service.
type GenerationConfig struct {
	// Backend is "canned" or "ollama"
	Backend string `toml:"backend"`
	// DelayMS is the simulated latency of the canned backend
	DelayMS int `toml:"delay_ms"`
	// RequestsPerMinute throttles requests (0 = unlimited)
	RequestsPerMinute int    `toml:"requests_per_minute"`
	OllamaURL         string `toml:"ollama_url"`
	OllamaModel       string `toml:"ollama_model"`
	TimeoutSecs       int    `toml:"timeout_secs"`
}

// AppointmentConfig holds appointment form defaults.
type AppointmentConfig struct {
	Reason   string `toml:"reason"`
	Location string `toml:"location"`
}

// OrderConfig holds lab order form defaults.
type OrderConfig struct {
	Priority string `toml:"priority"`
	Payment  string `toml:"payment"`
	Delivery string `toml:"delivery"`
}

// LogConfig configures the event log.
type LogConfig struct {
	// File is the log path (empty = ~/.chartpad/chartpad.log)
	File string `toml:"file"`
}

// UIConfig contains terminal UI configuration.
type UIConfig struct {
	// Theme is "dark", "light" or "auto" (detect from the terminal)
	Theme string `toml:"theme"`
	// Width caps the editor width in columns (0 = terminal width)
	Width int `toml:"width"`
}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Default returns a Config with sensible default values.
func Default() *Config {
	std := modal.StandardDefaults()
	vitals := patient.DefaultVitals()

	return &Config{
		Version: "1.0.0",

		Patient: PatientConfig{
			Name:             "Sarah Jenkins",
			DOB:              "1978-04-12",
			Gender:           "Female",
			MRN:              patient.PlaceholderMRN,
			EmergencyContact: patient.PlaceholderEmergencyContact,
			Vitals: VitalsConfig{
				BP:     vitals.BloodPressure,
				HR:     vitals.HeartRate,
				Temp:   vitals.Temperature,
				SpO2:   vitals.SpO2,
				Weight: vitals.Weight,
			},
		},

		Vocabulary: VocabularyConfig{
			Watch:      true,
			DebounceMS: 200,
		},

		Generation: GenerationConfig{
			Backend:           "canned",
			DelayMS:           800,
			RequestsPerMinute: 20,
			OllamaURL:         "http://127.0.0.1:11434",
			OllamaModel:       "llama3.1:8b",
			TimeoutSecs:       60,
		},

		Appointment: AppointmentConfig{
			Reason:   std.AppointmentReason,
			Location: std.AppointmentLocation,
		},

		Order: OrderConfig{
			Priority: std.OrderPriority,
			Payment:  std.OrderPayment,
			Delivery: std.OrderDelivery,
		},

		UI: UIConfig{
			Theme: "dark",
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the chartpad configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".chartpad"), nil
}

// ConfigPathTOML returns the path to the TOML config file.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// EnsureConfigDir ensures the config directory exists.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0700)
}

// ensureSecurePermissions checks and fixes permissions on config files.
// The file holds patient identifiers, so it is kept at 0600.
func ensureSecurePermissions(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	mode := info.Mode().Perm()
	if mode != 0600 {
		if err := os.Chmod(path, 0600); err != nil {
			return fmt.Errorf("failed to fix insecure permissions (was %o): %w", mode, err)
		}
	}
	return nil
}

// LogPath returns the resolved log file path.
func (c *Config) LogPath() (string, error) {
	if c.Log.File != "" {
		return c.Log.File, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "chartpad.log"), nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from the default config file, falling back to
// defaults when it does not exist. Environment overrides are applied last.
func Load() (*Config, error) {
	path, err := ConfigPathTOML()
	if err == nil {
		if _, statErr := os.Stat(path); statErr == nil {
			return LoadFromPath(path)
		}
	}

	cfg := Default()
	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadTOML decodes a TOML file over cfg.
func LoadTOML(cfg *Config, path string) error {
	if err := ensureSecurePermissions(path); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not ensure secure permissions on %s: %v\n", path, err)
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	return nil
}

// LoadFromPath loads configuration from a specific file path with full
// validation. Keys missing from the file keep their defaults.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()
	if err := LoadTOML(cfg, path); err != nil {
		return nil, fmt.Errorf("failed to load TOML config from %s: %w", path, err)
	}

	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save saves the configuration to the default TOML file.
func Save(cfg *Config) error {
	if err := EnsureConfigDir(); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	path, err := ConfigPathTOML()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML saves the configuration to a TOML file with 0600 permissions.
// The file is replaced atomically so a crash never leaves half a config.
func SaveTOML(cfg *Config, path string) error {
	var buf bytes.Buffer
	buf.WriteString("# chartpad configuration file\n")
	buf.WriteString("# Generated by chartpad - edit with care\n\n")

	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	// ==========================================================================
	// Patient
	// ==========================================================================

	if strings.TrimSpace(c.Patient.Name) == "" {
		errs = append(errs, ValidationError{
			Field:   "patient.name",
			Message: "must not be empty",
		})
	}
	if c.Patient.DOB != "" {
		if _, err := time.Parse("2006-01-02", c.Patient.DOB); err != nil {
			errs = append(errs, ValidationError{
				Field:   "patient.dob",
				Message: fmt.Sprintf("must be YYYY-MM-DD, got '%s'", c.Patient.DOB),
			})
		}
	}
	if c.Patient.Age < 0 || c.Patient.Age > 150 {
		errs = append(errs, ValidationError{
			Field:   "patient.age",
			Message: fmt.Sprintf("must be 0-150, got %d", c.Patient.Age),
		})
	}

	// ==========================================================================
	// Vocabulary
	// ==========================================================================

	if c.Vocabulary.DebounceMS < 0 {
		errs = append(errs, ValidationError{
			Field:   "vocabulary.debounce_ms",
			Message: "must be non-negative",
		})
	}

	// ==========================================================================
	// Generation
	// ==========================================================================

	validBackends := map[string]bool{"canned": true, "ollama": true}
	if !validBackends[strings.ToLower(c.Generation.Backend)] {
		errs = append(errs, ValidationError{
			Field:   "generation.backend",
			Message: fmt.Sprintf("invalid backend '%s', must be one of: canned, ollama", c.Generation.Backend),
		})
	}
	if c.Generation.DelayMS < 0 {
		errs = append(errs, ValidationError{
			Field:   "generation.delay_ms",
			Message: "must be non-negative",
		})
	}
	if c.Generation.RequestsPerMinute < 0 {
		errs = append(errs, ValidationError{
			Field:   "generation.requests_per_minute",
			Message: "must be non-negative",
		})
	}
	if c.Generation.TimeoutSecs <= 0 {
		errs = append(errs, ValidationError{
			Field:   "generation.timeout_secs",
			Message: "must be positive",
		})
	}
	if c.Generation.OllamaURL != "" {
		if u, err := url.Parse(c.Generation.OllamaURL); err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, ValidationError{
				Field:   "generation.ollama_url",
				Message: fmt.Sprintf("invalid URL '%s'", c.Generation.OllamaURL),
			})
		}
	}

	// ==========================================================================
	// Order defaults
	// ==========================================================================

	validPriorities := map[string]bool{"routine": true, "urgent": true, "stat": true}
	if !validPriorities[strings.ToLower(c.Order.Priority)] {
		errs = append(errs, ValidationError{
			Field:   "order.priority",
			Message: fmt.Sprintf("invalid priority '%s', must be one of: Routine, Urgent, STAT", c.Order.Priority),
		})
	}

	// ==========================================================================
	// UI
	// ==========================================================================

	validThemes := map[string]bool{"dark": true, "light": true, "auto": true}
	if !validThemes[strings.ToLower(c.UI.Theme)] {
		errs = append(errs, ValidationError{
			Field:   "ui.theme",
			Message: fmt.Sprintf("invalid theme '%s', must be one of: dark, light, auto", c.UI.Theme),
		})
	}
	if c.UI.Width < 0 {
		errs = append(errs, ValidationError{
			Field:   "ui.width",
			Message: "must be non-negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SetDefaults sets default values for any missing or zero-value fields.
func (c *Config) SetDefaults() {
	defaults := Default()

	if c.Version == "" {
		c.Version = defaults.Version
	}

	// Patient
	if c.Patient.MRN == "" {
		c.Patient.MRN = patient.PlaceholderMRN
	}
	if c.Patient.EmergencyContact == "" {
		c.Patient.EmergencyContact = patient.PlaceholderEmergencyContact
	}
	if c.Patient.Age == 0 && c.Patient.DOB != "" {
		if age, err := patient.AgeOn(c.Patient.DOB, time.Now()); err == nil {
			c.Patient.Age = age
		}
	}
	v := &c.Patient.Vitals
	if v.BP == "" {
		v.BP = defaults.Patient.Vitals.BP
	}
	if v.HR == "" {
		v.HR = defaults.Patient.Vitals.HR
	}
	if v.Temp == "" {
		v.Temp = defaults.Patient.Vitals.Temp
	}
	if v.SpO2 == "" {
		v.SpO2 = defaults.Patient.Vitals.SpO2
	}
	if v.Weight == "" {
		v.Weight = defaults.Patient.Vitals.Weight
	}

	// Generation
	if c.Generation.Backend == "" {
		c.Generation.Backend = defaults.Generation.Backend
	}
	if c.Generation.OllamaURL == "" {
		c.Generation.OllamaURL = defaults.Generation.OllamaURL
	}
	if c.Generation.OllamaModel == "" {
		c.Generation.OllamaModel = defaults.Generation.OllamaModel
	}
	if c.Generation.TimeoutSecs == 0 {
		c.Generation.TimeoutSecs = defaults.Generation.TimeoutSecs
	}

	// Modal defaults
	if c.Appointment.Reason == "" {
		c.Appointment.Reason = defaults.Appointment.Reason
	}
	if c.Appointment.Location == "" {
		c.Appointment.Location = defaults.Appointment.Location
	}
	if c.Order.Priority == "" {
		c.Order.Priority = defaults.Order.Priority
	}
	if c.Order.Payment == "" {
		c.Order.Payment = defaults.Order.Payment
	}
	if c.Order.Delivery == "" {
		c.Order.Delivery = defaults.Order.Delivery
	}

	// UI
	if c.UI.Theme == "" {
		c.UI.Theme = defaults.UI.Theme
	}
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides to the config.
//
// Supported environment variables:
//   - CHARTPAD_PATIENT: overrides patient.name
//   - CHARTPAD_VOCAB: overrides vocabulary.file
//   - CHARTPAD_BACKEND: overrides generation.backend
//   - CHARTPAD_OLLAMA_URL: overrides generation.ollama_url
//   - CHARTPAD_MODEL: overrides generation.ollama_model
//   - CHARTPAD_LOG: overrides log.file
//   - CHARTPAD_THEME: overrides ui.theme
func (c *Config) ApplyEnvOverrides() {
	if name := os.Getenv("CHARTPAD_PATIENT"); name != "" {
		c.Patient.Name = name
	}
	if file := os.Getenv("CHARTPAD_VOCAB"); file != "" {
		c.Vocabulary.File = file
	}
	if backend := os.Getenv("CHARTPAD_BACKEND"); backend != "" {
		c.Generation.Backend = backend
	}
	if u := os.Getenv("CHARTPAD_OLLAMA_URL"); u != "" {
		c.Generation.OllamaURL = u
	}
	if model := os.Getenv("CHARTPAD_MODEL"); model != "" {
		c.Generation.OllamaModel = model
	}
	if file := os.Getenv("CHARTPAD_LOG"); file != "" {
		c.Log.File = file
	}
	if theme := os.Getenv("CHARTPAD_THEME"); theme != "" {
		c.UI.Theme = theme
	}
}

// =============================================================================
// DOMAIN VIEWS
// =============================================================================

// PatientContext returns the patient section as a patient.Context.
func (c *Config) PatientContext() patient.Context {
	p := c.Patient
	return patient.Context{
		Name:             p.Name,
		DOB:              p.DOB,
		Age:              p.Age,
		Gender:           p.Gender,
		MRN:              p.MRN,
		EmergencyContact: p.EmergencyContact,
		Vitals: patient.Vitals{
			BloodPressure: p.Vitals.BP,
			HeartRate:     p.Vitals.HR,
			Temperature:   p.Vitals.Temp,
			SpO2:          p.Vitals.SpO2,
			Weight:        p.Vitals.Weight,
		},
	}
}

// FormDefaults returns the modal form defaults.
func (c *Config) FormDefaults() modal.Defaults {
	return modal.Defaults{
		AppointmentReason:   c.Appointment.Reason,
		AppointmentLocation: c.Appointment.Location,
		OrderPriority:       c.Order.Priority,
		OrderPayment:        c.Order.Payment,
		OrderDelivery:       c.Order.Delivery,
	}
}

// =============================================================================
// GET/SET HELPERS (DOT NOTATION)
// =============================================================================

// Get retrieves a configuration value using dot notation (e.g., "patient.vitals.bp").
func (c *Config) Get(key string) (interface{}, error) {
	field, err := c.lookup(key)
	if err != nil {
		return nil, err
	}
	return field.Interface(), nil
}

// Set sets a configuration value using dot notation (e.g., "generation.delay_ms").
func (c *Config) Set(key string, value interface{}) error {
	field, err := c.lookup(key)
	if err != nil {
		return err
	}
	if !field.CanSet() {
		return fmt.Errorf("cannot set field: %s", key)
	}
	return setFieldValue(field, value)
}

func (c *Config) lookup(key string) (reflect.Value, error) {
	if key == "" {
		return reflect.Value{}, errors.New("empty key")
	}
	parts := strings.Split(key, ".")

	v := reflect.ValueOf(c).Elem()
	for i, part := range parts {
		fieldName := normalizeFieldName(part)
		field := v.FieldByNameFunc(func(name string) bool {
			return strings.EqualFold(name, fieldName)
		})
		if !field.IsValid() {
			return reflect.Value{}, fmt.Errorf("unknown field: %s", strings.Join(parts[:i+1], "."))
		}
		if i == len(parts)-1 {
			return field, nil
		}
		if field.Kind() != reflect.Struct {
			return reflect.Value{}, fmt.Errorf("field '%s' is not a struct", strings.Join(parts[:i+1], "."))
		}
		v = field
	}
	return reflect.Value{}, fmt.Errorf("invalid key: %s", key)
}

// normalizeFieldName converts a snake_case or kebab-case name to its Go field equivalent.
func normalizeFieldName(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-'
	})

	var result strings.Builder
	for _, part := range parts {
		if len(part) > 0 {
			result.WriteString(strings.ToUpper(string(part[0])))
			result.WriteString(strings.ToLower(part[1:]))
		}
	}
	return result.String()
}

// setFieldValue sets a reflect.Value from an interface{} value with type conversion.
func setFieldValue(field reflect.Value, value interface{}) error {
	if strVal, ok := value.(string); ok {
		switch field.Kind() {
		case reflect.String:
			field.SetString(strVal)
			return nil
		case reflect.Int, reflect.Int64:
			intVal, err := strconv.ParseInt(strVal, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid integer value: %v", err)
			}
			field.SetInt(intVal)
			return nil
		case reflect.Bool:
			boolVal := strVal == "1" || strings.ToLower(strVal) == "true" || strings.ToLower(strVal) == "yes"
			field.SetBool(boolVal)
			return nil
		}
	}

	val := reflect.ValueOf(value)
	if val.Type().AssignableTo(field.Type()) {
		field.Set(val)
		return nil
	}
	if val.Type().ConvertibleTo(field.Type()) {
		field.Set(val.Convert(field.Type()))
		return nil
	}
	return fmt.Errorf("cannot assign %T to %s", value, field.Type())
}

// GetAllKeys returns all configuration keys in dot notation.
func GetAllKeys() []string {
	return []string{
		"version",
		"patient.name",
		"patient.dob",
		"patient.age",
		"patient.gender",
		"patient.mrn",
		"patient.emergency_contact",
		"patient.vitals.bp",
		"patient.vitals.hr",
		"patient.vitals.temp",
		"patient.vitals.spo2",
		"patient.vitals.weight",
		"vocabulary.file",
		"vocabulary.watch",
		"vocabulary.debounce_ms",
		"generation.backend",
		"generation.delay_ms",
		"generation.requests_per_minute",
		"generation.ollama_url",
		"generation.ollama_model",
		"generation.timeout_secs",
		"appointment.reason",
		"appointment.location",
		"order.priority",
		"order.payment",
		"order.delivery",
		"log.file",
		"ui.theme",
		"ui.width",
	}
}

// String returns the configuration as TOML. The MRN is redacted so the
// output is safe to paste into bug reports.
func (c *Config) String() string {
	safe := *c
	if safe.Patient.MRN != "" && safe.Patient.MRN != patient.PlaceholderMRN {
		safe.Patient.MRN = "[REDACTED]"
	}
	var b strings.Builder
	if err := toml.NewEncoder(&b).Encode(safe); err != nil {
		return fmt.Sprintf("config: %v", err)
	}
	return b.String()
}
