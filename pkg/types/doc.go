// Package types defines the core data model (Entry, Bundle, Lock) and the
// capability interfaces (FS, Prompt) shared by every other package. It has
// no dependencies on the rest of the codebase so that any package can import
// it without cycles.
package types
