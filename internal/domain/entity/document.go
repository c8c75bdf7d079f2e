package entity

import "time"

// Document archivo subido por un candidato; el binario vive en el object storage.
type Document struct {
	ID          int64
	CandidateID int64
	FileName    string
	FileType    string
	FileSize    int64
	ObjectKey   string
	URL         string
	UploadedAt  time.Time
}
