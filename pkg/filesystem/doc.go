// Package filesystem provides implementations of the types.FS interface:
// the real OS filesystem for production use and an afero-backed in-memory
// filesystem for tests.
package filesystem
