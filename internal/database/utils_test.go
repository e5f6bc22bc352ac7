package database

import (
	"context"
	"testing"
	"time"

	"mcq-service/internal/database/model"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func useMemoryDB(t *testing.T) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	// every pooled connection would otherwise get its own empty in-memory database
	sqlDB.SetMaxOpenConns(1)
	Use(db)
	if err := Migrate(); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() { Use(nil) })
}

func TestEntityHelpers(t *testing.T) {
	useMemoryDB(t)
	ctx := context.Background()

	name, path := "bio.pdf", "storage/documents/abc.pdf"
	now := time.Now()
	doc := model.Document{OriginalFilename: &name, FilePath: &path, UploadedAt: &now}
	if err := CreateEntity(ctx, &doc); err != nil {
		t.Fatalf("create: %v", err)
	}
	if doc.ID == 0 {
		t.Fatal("id not assigned")
	}

	got, err := GetEntityByID[model.Document](ctx, doc.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if *got.FilePath != path || got.Status != "uploaded" {
		t.Fatalf("got %+v", got)
	}

	if err := UpdateEntityByID[model.Document](ctx, doc.ID, map[string]interface{}{"status": "ready"}); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, _ = GetEntityByID[model.Document](ctx, doc.ID)
	if got.Status != "ready" {
		t.Fatalf("status = %q", got.Status)
	}

	for i := int64(1); i <= 3; i++ {
		r := model.QuizResult{DocumentID: &doc.ID, Score: i, Total: 5}
		if err := CreateEntity(ctx, &r); err != nil {
			t.Fatalf("create result: %v", err)
		}
	}
	results, err := FindEntities[model.QuizResult](ctx, 2, "document_id = ?", doc.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(results) != 2 || results[0].Score != 3 {
		t.Fatalf("results = %+v", results)
	}
}
