// Package config loads YAML configuration for the data pipelines.
//
// Both binaries read the same file; each consumes its own section plus the
// shared logging and database sections. Every field has a default carrying
// the values the pipelines were originally built with, so a missing config
// file is not an error at the call sites.
//
// ${VAR} references in the file are expanded from the environment before
// parsing, which keeps credentials out of checked-in configs.
package config
