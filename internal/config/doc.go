// Package config provides centralized configuration for the crimescope
// pipeline and the exhibits server. It layers three sources, highest
// precedence last:
//
//	1. Built-in defaults
//	2. An optional config.yaml next to the working directory
//	3. Environment variables with the CRIMESCOPE_ prefix
//
// The package is also the single source of truth for filesystem paths and
// for the domain constants that never change at runtime: the covered year
// range and the canonical crime category set live in the domain contract
// package, while operational constants (directory names, well-known output
// files, server limits) live here.
package config
