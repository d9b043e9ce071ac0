package gcp

import (
	"fmt"
	"net/url"
	"strings"
)

type StorageMode string

const (
	StorageModeGCS         StorageMode = "gcs"
	StorageModeGCSEmulator StorageMode = "gcs_emulator"
)

// StorageConfig describes the single bucket that holds congress templates
// and training files.
type StorageConfig struct {
	Bucket        string
	Mode          StorageMode
	EmulatorHost  string
	PublicBaseURL string
	CDNDomain     string

	// CompatibilityFallback is set when the mode was inferred from EmulatorHost.
	CompatibilityFallback bool
}

func (cfg StorageConfig) IsEmulatorMode() bool { return cfg.Mode == StorageModeGCSEmulator }

func (cfg StorageConfig) ModeSource() string {
	if cfg.CompatibilityFallback {
		return "compatibility_fallback"
	}
	return "explicit_or_default"
}

type StorageConfigErrorCode string

const (
	StorageConfigErrorMissingBucket       StorageConfigErrorCode = "missing_bucket"
	StorageConfigErrorInvalidMode         StorageConfigErrorCode = "invalid_mode"
	StorageConfigErrorMissingEmulatorHost StorageConfigErrorCode = "missing_emulator_host"
	StorageConfigErrorInvalidURL          StorageConfigErrorCode = "invalid_url"
)

type StorageConfigError struct {
	Code  StorageConfigErrorCode
	Value string
	Cause error
}

func (e *StorageConfigError) Error() string {
	if e == nil {
		return "invalid storage config"
	}
	switch e.Code {
	case StorageConfigErrorMissingBucket:
		return "STORAGE_BUCKET is required"
	case StorageConfigErrorInvalidMode:
		return fmt.Sprintf("invalid STORAGE_MODE=%q (allowed: %q, %q)", e.Value, StorageModeGCS, StorageModeGCSEmulator)
	case StorageConfigErrorMissingEmulatorHost:
		return fmt.Sprintf("STORAGE_MODE=%q requires STORAGE_EMULATOR_HOST to be set", StorageModeGCSEmulator)
	case StorageConfigErrorInvalidURL:
		return fmt.Sprintf("invalid storage url %q; expected absolute URL like http://fake-gcs:4443", e.Value)
	default:
		return "invalid storage config"
	}
}

func (e *StorageConfigError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// Normalize fills Mode from the raw value (inferring the emulator when only
// EmulatorHost is set) and validates the result.
func (cfg StorageConfig) Normalize() (StorageConfig, error) {
	cfg.Bucket = strings.TrimSpace(cfg.Bucket)
	cfg.EmulatorHost = strings.TrimRight(strings.TrimSpace(cfg.EmulatorHost), "/")
	cfg.PublicBaseURL = strings.TrimRight(strings.TrimSpace(cfg.PublicBaseURL), "/")
	cfg.CDNDomain = strings.Trim(strings.TrimSpace(cfg.CDNDomain), "/")

	raw := cfg.Mode
	switch StorageMode(strings.ToLower(strings.TrimSpace(string(raw)))) {
	case "":
		if cfg.EmulatorHost != "" {
			cfg.Mode = StorageModeGCSEmulator
			cfg.CompatibilityFallback = true
		} else {
			cfg.Mode = StorageModeGCS
		}
	case StorageModeGCS:
		cfg.Mode = StorageModeGCS
	case StorageModeGCSEmulator:
		cfg.Mode = StorageModeGCSEmulator
	default:
		return cfg, &StorageConfigError{Code: StorageConfigErrorInvalidMode, Value: string(raw)}
	}

	if cfg.Bucket == "" {
		return cfg, &StorageConfigError{Code: StorageConfigErrorMissingBucket}
	}
	if cfg.IsEmulatorMode() {
		if cfg.EmulatorHost == "" {
			return cfg, &StorageConfigError{Code: StorageConfigErrorMissingEmulatorHost}
		}
		if err := validateAbsURL(cfg.EmulatorHost); err != nil {
			return cfg, err
		}
	}
	if cfg.PublicBaseURL != "" {
		if err := validateAbsURL(cfg.PublicBaseURL); err != nil {
			return cfg, err
		}
	}
	return cfg, nil
}

func validateAbsURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil || strings.TrimSpace(u.Scheme) == "" || strings.TrimSpace(u.Host) == "" {
		return &StorageConfigError{Code: StorageConfigErrorInvalidURL, Value: raw, Cause: err}
	}
	return nil
}
