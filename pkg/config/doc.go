// Package config loads typed configuration structs from environment
// variables, with optional .env bootstrap for local development.
//
// Parsing is delegated to github.com/caarlos0/env; struct fields declare
// their sources via `env` and `envDefault` tags. Each config type is parsed
// once per process and cached, so repeated loads are cheap and consistent.
package config
