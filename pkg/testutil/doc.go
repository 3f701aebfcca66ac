// Package testutil provides shared helpers for wslkit tests: an in-memory
// filesystem, a recording command runner, and SSH key fixtures generated
// in-process.
package testutil
