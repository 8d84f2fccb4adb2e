// Package config loads, normalizes, and validates moviescores configuration.
//
// Values come from a TOML file (default ~/.config/moviescores/config.toml,
// falling back to ./moviescores.toml) layered over Default(). The OMDb API key
// may also be supplied through the OMDB_API_KEY environment variable.
package config
