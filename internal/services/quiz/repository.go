package quiz

import (
	"context"
	"errors"
	"time"

	"mcq-service/internal/database"
	"mcq-service/internal/database/model"

	"gorm.io/gorm"
)

const (
	StatusUploaded = "uploaded"
	StatusReady    = "ready"
	StatusFailed   = "failed"
)

func getDocument(ctx context.Context, docID int64) (*model.Document, error) {
	doc, err := database.GetEntityByID[model.Document](ctx, docID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrDocumentNotFound
	}
	return doc, err
}

// DocumentPath resolves an uploaded document to its stored path.
func DocumentPath(ctx context.Context, docID int64) (string, error) {
	doc, err := getDocument(ctx, docID)
	if err != nil {
		return "", err
	}
	if doc.FilePath == nil || *doc.FilePath == "" {
		return "", ErrDocumentNotFound
	}
	return *doc.FilePath, nil
}

func UpdateDocumentStatus(ctx context.Context, docID int64, status string) error {
	return database.UpdateEntityByID[model.Document](ctx, docID, map[string]interface{}{"status": status})
}

// FindDocumentBySHA returns the newest document with the given content hash, or nil.
func FindDocumentBySHA(ctx context.Context, sha string) (*model.Document, error) {
	docs, err := database.FindEntities[model.Document](ctx, 1, "sha256 = ?", sha)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, nil
	}
	return &docs[0], nil
}

// InsertDocument records an upload. Content already stored under the same hash
// returns the existing row; lookup and insert share one transaction.
func InsertDocument(ctx context.Context, originalName, path, sha string) (*model.Document, error) {
	var doc model.Document
	err := database.WithTx(ctx, func(tx *gorm.DB) error {
		err := tx.Where("sha256 = ?", sha).Order("id desc").First(&doc).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		now := time.Now()
		doc = model.Document{
			OriginalFilename: &originalName,
			FilePath:         &path,
			Sha256:           &sha,
			Status:           StatusUploaded,
			UploadedAt:       &now,
		}
		return tx.Create(&doc).Error
	})
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func InsertQuizResult(ctx context.Context, docID int64, requestID string, score, total int) error {
	now := time.Now()
	res := model.QuizResult{
		DocumentID: &docID,
		Score:      int64(score),
		Total:      int64(total),
		CreatedAt:  &now,
	}
	if requestID != "" {
		res.RequestID = &requestID
	}
	return database.CreateEntity(ctx, &res)
}

// RecentResults lists the newest quiz results for an existing document.
func RecentResults(ctx context.Context, docID int64, limit int) ([]model.QuizResult, error) {
	if _, err := getDocument(ctx, docID); err != nil {
		return nil, err
	}
	return database.FindEntities[model.QuizResult](ctx, limit, "document_id = ?", docID)
}
