// Package config loads, validates, and normalizes stylus configuration.
//
// Configuration is TOML, read from an explicit path, ~/.config/stylus/
// config.toml, or a project-local stylus.toml, in that order. Defaults are
// applied first so a missing file yields a runnable configuration. All path
// fields are tilde-expanded and made absolute during normalization.
package config
