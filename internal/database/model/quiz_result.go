package model

import "time"

const TableNameQuizResult = "quiz_results"

// QuizResult is one scored submission.
type QuizResult struct {
	ID         int64      `gorm:"column:id;primaryKey;autoIncrement:true" json:"id"`
	DocumentID *int64     `gorm:"column:document_id;index" json:"document_id"`
	Score      int64      `gorm:"column:score;not null" json:"score"`
	Total      int64      `gorm:"column:total;not null" json:"total"`
	RequestID  *string    `gorm:"column:request_id;size:64" json:"request_id"`
	CreatedAt  *time.Time `gorm:"column:created_at" json:"created_at"`
}

func (*QuizResult) TableName() string {
	return TableNameQuizResult
}
