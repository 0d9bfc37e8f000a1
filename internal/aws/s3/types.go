package s3

// ReportObject identifies an uploaded report.
type ReportObject struct {
	Bucket string
	Key    string
	ETag   string
	Size   int64
}
