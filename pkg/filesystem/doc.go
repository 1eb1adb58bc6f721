// Package filesystem provides filesystem implementations for seam.
//
// This package contains implementations of the types.FS interface.
// The engine only ever touches disk through types.FS, which keeps the
// transactional phases testable against a throwaway directory.
package filesystem
