// Package testutil provides fixtures shared by the package tests: isolated
// XDG directories, files in temp dirs, and rule file and alias table content
// built from Go values.
//
// Test data is defined inline in each test; nothing here reads files that
// are not created by the test itself.
package testutil
