// Package schema provides the principal schematics for all other packages. It
// defines the shared structures of a move run, the volume interfaces and
// implementations for handling (Unix-based) operating system syscalls. The
// package serves as a foundational layer for the rest of the codebase.
package schema
