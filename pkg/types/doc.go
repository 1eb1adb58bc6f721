// Package types defines the core types used throughout seam.
// This includes the Manifest and ManifestEntry data model, the FS
// filesystem interface, and the Progress reporting types.
package types
