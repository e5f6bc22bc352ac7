package model

import "time"

const TableNameDocument = "documents"

// Document is an uploaded source PDF.
type Document struct {
	ID               int64      `gorm:"column:id;primaryKey;autoIncrement:true" json:"id"`
	OriginalFilename *string    `gorm:"column:original_filename;size:255" json:"original_filename"`
	FilePath         *string    `gorm:"column:file_path;size:1024" json:"file_path"`
	Sha256           *string    `gorm:"column:sha256;size:64;index" json:"sha256"`
	Status           string     `gorm:"column:status;size:32;not null;default:uploaded" json:"status"`
	UploadedAt       *time.Time `gorm:"column:uploaded_at" json:"uploaded_at"`
}

func (*Document) TableName() string {
	return TableNameDocument
}
