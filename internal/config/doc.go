// Package config loads, normalizes, and validates minutes configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// MINUTES_LOCALE and MINUTES_TRANSCRIPTION_API_KEY. The Config type
// centralizes every knob the CLI needs so the format store location, display
// locale, and transcription endpoint are discovered in one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
