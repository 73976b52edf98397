package platform

// Package platform contains OS/platform integration and external tooling
// glue: filesystem and dependency helpers, YouTube URL classification, and
// the scraper for yt-dlp's line-oriented output.
