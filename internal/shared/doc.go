// Package shared holds helpers used across censuscli packages.
//
// The testutil subpackage provides census fixtures (an attribute description
// and matching data records that can be written to a temporary directory) and
// a buffered slog handler for asserting on log output.
package shared
