// Package configs provides embedded configuration templates for trawl.
//
// Templates are embedded at build time with go:embed so they ship in
// every distribution. They are written out by 'trawl config init'
// (project config) and 'trawl config init --user' (user config).
//
// Configuration precedence (see internal/config):
//  1. Built-in defaults
//  2. User config (~/.config/trawl/config.yaml)
//  3. Project config (.trawl.yaml)
//  4. Environment variables (TRAWL_*)
//  5. Command-line flags
package configs

import _ "embed"

// UserConfigTemplate is the template for user-level configuration,
// holding machine-wide preferences such as colors and log verbosity.
//
//go:embed user-config.example.yaml
var UserConfigTemplate string

// ProjectConfigTemplate is the template for project-level configuration,
// version-controlled with the project. Holds per-repo search defaults
// such as excluded globs and type filters.
//
//go:embed project-config.example.yaml
var ProjectConfigTemplate string
