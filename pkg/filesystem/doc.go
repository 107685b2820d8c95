// Package filesystem provides the OS-backed implementation of types.FS and
// the capability helpers (Read, Write, MkdirAll, RemoveAll, CopyAll, type
// predicates) that the rest of the codebase uses instead of touching a backend
// directly. The in-memory implementation used by tests lives in
// pkg/testutil; both satisfy the same interface, so every helper here works
// against either backend.
package filesystem
