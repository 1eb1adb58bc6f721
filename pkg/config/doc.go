// Package config loads seam's configuration: the fixed names of the
// patch asset layout and the path restriction policy.
//
// Defaults are embedded in the binary so the persisted layout and the
// code always agree. A seam.toml pointed to by SEAM_CONFIG (or passed
// explicitly) can override individual keys, which is mainly useful for
// tests and for distributors who ship under different directory names.
package config
