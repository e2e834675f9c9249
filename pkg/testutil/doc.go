// Package testutil holds helpers shared by the package tests: an in-memory
// filesystem and a value provider that is not backed by any store.
package testutil
