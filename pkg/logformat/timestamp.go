package logformat

import "time"

// RecordLayout is the timestamp layout used in the error log, the sample
// header and the session banner
const RecordLayout = "2006-01-02 15:04:05"

// FormatTimestamp formats t for a log record
func FormatTimestamp(t time.Time) string {
	return t.Format(RecordLayout)
}
