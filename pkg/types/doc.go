// Package types defines the schema snapshot model, bootstrap results,
// configuration and the standard error values shared by driftlab packages.
package types
