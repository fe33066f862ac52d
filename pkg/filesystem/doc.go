// Package filesystem provides filesystem implementations for templater.
//
// This package contains implementations of the types.FS interface,
// including the standard OS filesystem. An in-memory implementation
// for tests lives in pkg/testutil.
package filesystem
