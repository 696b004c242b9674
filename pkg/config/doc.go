// Package config loads qcl settings from the embedded defaults, the user's
// config.toml, QCL_* environment variables and command-line overrides, in
// that order of precedence.
package config
