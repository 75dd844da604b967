package constant

// Source site endpoints for the music archive traversal.
const (
	// SiteBase is the scheme and host all relative archive links resolve against.
	SiteBase = "https://www.zophar.net"

	// MusicPath is the root listing page containing the per-console sections.
	MusicPath = "/music"
)
