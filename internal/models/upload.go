package models

import "time"

type FileUpload struct {
	ID         string    `json:"id"`
	FileName   string    `json:"file_name"`
	Path       string    `json:"file"`
	UploadedBy *string   `json:"-"`
	UploadedAt time.Time `json:"uploaded_at"`
}
