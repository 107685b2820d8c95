// Package testutil provides the in-memory filesystem, a scripted prompt
// double and small assertion helpers used across package tests. Every
// double is constructed per test; there is no shared process-wide state.
package testutil
