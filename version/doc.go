// Package version reports the dnacount version and build metadata.
//
// Values come from -ldflags when set:
//
//	-ldflags "-X github.com/dendrascience/dnacount/version.Version=v1.0.0 -X github.com/dendrascience/dnacount/version.Commit=abc123 -X github.com/dendrascience/dnacount/version.Date=2026-01-01T00:00:00Z"
//
// and otherwise from debug.ReadBuildInfo, falling back to development values.
package version
