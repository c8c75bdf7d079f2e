package dto

import "time"

// DocumentResponse metadatos de un documento subido.
type DocumentResponse struct {
	ID          int64     `json:"id"`
	CandidateID int64     `json:"candidateId"`
	FileName    string    `json:"fileName"`
	FileType    string    `json:"fileType"`
	FileSize    int64     `json:"fileSize"`
	URL         string    `json:"url"`
	UploadedAt  time.Time `json:"uploadTime"`
}
