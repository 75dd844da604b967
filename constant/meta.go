// Package constant defines immutable application-level identifiers and configuration defaults.
package constant

const (
	// Vgmirror is the canonical application identifier used for filesystem paths and CLI branding.
	Vgmirror = "vgmirror"

	// Version is the current application semantic version string.
	Version = "0.1.0"

	// UserAgent is the default HTTP User-Agent string used for direct file downloads.
	UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// Build metadata, overridable via -ldflags at release time.
var (
	Revision = "unknown"
	BuiltAt  = "unknown"
	BuiltBy  = "unknown"
)
