// Package version holds build information stamped in by the linker.
package version

// Build information set by ldflags
var (
	Version = "dev"     // -X github.com/arthur-debert/gffstruct/internal/version.Version={{.Version}}
	Commit  = "unknown" // -X github.com/arthur-debert/gffstruct/internal/version.Commit={{.Commit}}
	Date    = "unknown" // -X github.com/arthur-debert/gffstruct/internal/version.Date={{.Date}}
)
