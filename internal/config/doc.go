// Package config loads glyphart's configuration.
//
// # Overview
//
// glyphart needs very little configuration: where the conversion service
// lives, where downloaded results go, and where to write its own log. Every
// field has a default so the client works without any configuration file.
//
// # Resolution Order
//
//  1. Built-in defaults
//  2. ~/.config/glyphart/config.toml (or the path passed to Load)
//  3. A .env file in the working directory (loaded into the environment)
//  4. GLYPHART_* environment variables
//
// Later sources win. Empty values in the file are ignored.
//
// # TOML Format
//
//	endpoint = "http://localhost:8000/upload"
//	download_dir = "~/Pictures"
//	download_name = "glyphart.png"
//	log_file = "~/.local/state/glyphart/glyphart.log"
//	health_interval_seconds = 5
//
// download_name is reduced to its base name so a download can never escape
// download_dir.
//
// # Errors
//
// Load returns errors for unreadable or malformed files and for endpoints that
// are not absolute http(s) URLs. A missing file is not an error.
package config
