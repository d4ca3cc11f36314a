// Package version carries the build version reported by the CLI and the
// SARIF tool driver.
package version

var Version = "0.3.0"
