// Package config loads, normalizes, and validates the TOML configuration.
//
// All state the pipeline needs (directories, the session credential, tool
// binary locations, the whisper model policy) is carried explicitly in the
// Config struct; nothing in the core reads environment state on its own.
package config
