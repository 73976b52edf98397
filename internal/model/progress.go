package model

// Download status phrases extracted from yt-dlp output lines.
const (
	StatusDownloading = "downloading"
	StatusPreparing   = "preparing"
	StatusExists      = "exists"
)

// NoPercentage marks a progress event that carried no percentage token.
const NoPercentage = -1

// Progress is a sparse record extracted from one line of yt-dlp output.
// Fields the line did not carry stay at their zero value; Percentage uses
// NoPercentage as the absent marker since 0% is a valid reading.
type Progress struct {
	Percentage float64 // 0-100, NoPercentage when absent
	Speed      string  // e.g. "1.50MiB/s"
	ETA        string  // e.g. "00:10"
	Status     string  // StatusDownloading, StatusPreparing or StatusExists
	FilePath   string  // destination path, set with StatusPreparing
	StatusText string  // human-readable phrase for non-numeric lines
}

// HasPercentage reports whether the line carried a percentage token.
func (p *Progress) HasPercentage() bool {
	return p.Percentage != NoPercentage
}
