// Package config loads, normalizes, and validates the TOML configuration for
// pagepress.
//
// Configuration resolves from an explicit --config path, then
// ~/.config/pagepress/config.toml, then a pagepress.toml in the working
// directory, falling back to built-in defaults when no file exists. Paths are
// tilde-expanded and made absolute during normalization, and the log level can
// be overridden with the PAGEPRESS_LOG_LEVEL environment variable.
package config
