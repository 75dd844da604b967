// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Download Destination - these keys control where and what the mirror writes to disk.
const (
	DownloadsPath           = "downloads.path"
	DownloadsConsoles       = "downloads.consoles"
	DownloadsFormatPriority = "downloads.format_priority"
	DownloadsKeepArchive    = "downloads.keep_archive"
)

// Scraper Behavior - these keys govern page traversal pacing and readiness detection.
const (
	ScraperDelay       = "scraper.delay"
	ScraperPageTimeout = "scraper.page_timeout"
)

// Browser Session - these keys configure the headless browser used for page rendering.
const (
	BrowserPath     = "browser.path"
	BrowserHeadless = "browser.headless"
)

// Iconography - these keys manage the visual rendering of progress symbols.
const (
	IconsVariant = "icons.variant"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment - these settings govern terminal output behavior.
const (
	CliColored      = "cli.colored"
	CliVersionCheck = "cli.version_check"
)
