// Package config provides application configuration loaded from environment
// variables (prefix HOUSINGPREP) merged over an optional YAML file, with
// struct-tag validation, plus the Paths single source of truth for every
// file location the pipeline touches.
package config
