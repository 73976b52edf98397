package download

// Package download implements the process supervisor for yt-dlp. It owns a
// single subprocess lifecycle: argument construction from a request, launch,
// line-by-line streaming of merged output through the platform parser into
// progress events, and cooperative cancellation with terminate-to-kill
// escalation. At most one download is active at a time; there is no queue.
