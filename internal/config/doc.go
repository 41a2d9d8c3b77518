// Package config resolves shelf's startup configuration.
//
// # Sources
//
// Values are resolved once, in this order (later wins):
//
//  1. Built-in defaults
//  2. ~/.config/shelf/config.toml, or the path passed to Load
//  3. Environment variables, optionally seeded from a .env file by LoadEnv
//
// A missing config file is not an error. A missing .env file is only an
// error when its path was given explicitly. Variables already present in
// the environment are never overwritten by the .env file.
//
// # TOML Format
//
//	production = false
//	local_url = "http://localhost:5000/api"
//	production_url = "https://your-api-url.herokuapp.com/api"
//	request_timeout = "10s"
//	log_file = "~/.local/state/shelf/shelf.log"
//	log_level = "info"
//
// All fields are optional. Blank strings fall back to defaults and tilde
// expansion is applied to log_file.
//
// # Environment
//
//   - SHELF_PRODUCTION: any non-empty value except 0/false selects production_url
//   - SHELF_LOCAL_URL: overrides local_url
//   - SHELF_PRODUCTION_URL: overrides production_url
//
// BaseURL reports the root for whichever backend the toggle selected.
package config
