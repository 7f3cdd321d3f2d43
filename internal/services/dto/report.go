package dto

import "time"

// ReportPayload describes one generated health report.
type ReportPayload struct {
	FileName    string    `json:"file_name"`
	DownloadURL string    `json:"download_url"`
	GeneratedAt time.Time `json:"generated_at"`
}
