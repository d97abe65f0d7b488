package models

import "time"

// LogFileInfo describes a discovered access log file. Date is the date
// embedded in the filename, not the file's modification time.
type LogFileInfo struct {
	Path      string
	Date      time.Time
	Extension string
}

// LogRecord is one parsed access log line, reduced to the fields the
// report needs.
type LogRecord struct {
	URL         string
	RequestTime float64
}

// ReportEntry is a finalized per-URL statistics row destined for the
// rendered report. Percentages are rounded to 2 decimal places, times to 3.
type ReportEntry struct {
	URL       string  `json:"url"`
	Count     int     `json:"count"`
	CountPerc float64 `json:"count_perc"`
	TimeSum   float64 `json:"time_sum"`
	TimePerc  float64 `json:"time_perc"`
	TimeAvg   float64 `json:"time_avg"`
	TimeMax   float64 `json:"time_max"`
	TimeMed   float64 `json:"time_med"`
}
