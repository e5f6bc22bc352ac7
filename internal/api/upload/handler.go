package upload

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"mcq-service/config"
	"mcq-service/internal/services/quiz"
	"mcq-service/pkg/apperror"
	"mcq-service/pkg/apperror/status"
	"mcq-service/pkg/logger"
	s3client "mcq-service/pkg/s3"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type uploadResponse struct {
	DocID int64 `json:"doc_id"`
}

func HandleUpload(c fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return apperror.BadRequest(config.ModuleUpload, c, status.MissingParams, "file is required", err.Error())
	}
	if fh == nil || fh.Size == 0 {
		return apperror.BadRequest(config.ModuleUpload, c, status.MissingParams, "empty file", "")
	}

	file, err := fh.Open()
	if err != nil {
		return apperror.BadRequest(config.ModuleUpload, c, status.InvalidParams, "cannot open file", err.Error())
	}
	defer file.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(config.Cfg.Server.RequestTimeoutSeconds)*time.Second)
	defer cancel()

	// Stage to a temp file while hashing; the hash names the stored object.
	tmpPath, shaHex, err := stage(file)
	if err != nil {
		return apperror.InternalError(config.ModuleUpload, c, "upload failed", status.New(status.UploadInternal, err))
	}
	defer os.Remove(tmpPath)

	existing, err := quiz.FindDocumentBySHA(ctx, shaHex)
	if err != nil {
		return apperror.InternalError(config.ModuleUpload, c, "upload failed", err)
	}
	if existing != nil {
		return apperror.Success(c, "File already uploaded", uploadResponse{DocID: existing.ID})
	}

	var storedPath string
	if strings.TrimSpace(config.Cfg.S3.Bucket) != "" {
		storedPath, err = storeToS3(ctx, tmpPath, fh, shaHex)
	} else {
		storedPath, err = storeToLocal(tmpPath, fh, shaHex)
	}
	if err != nil {
		return apperror.InternalError(config.ModuleUpload, c, "upload failed", status.New(status.UploadStoreFailed, err))
	}

	doc, err := quiz.InsertDocument(ctx, fh.Filename, storedPath, shaHex)
	if err != nil {
		return apperror.InternalError(config.ModuleUpload, c, "upload failed", err)
	}
	logger.WithField("doc_id", doc.ID).Infof("%v: stored %s at %s", config.ModuleUpload, fh.Filename, storedPath)

	return apperror.Success(c, "File uploaded successfully", uploadResponse{DocID: doc.ID})
}

func stage(r io.Reader) (string, string, error) {
	tmp, err := os.CreateTemp("", "upload-"+uuid.NewString()+"-*.tmp")
	if err != nil {
		return "", "", fmt.Errorf("failed to create temp file: %w", err)
	}
	defer tmp.Close()

	hasher := sha256.New()
	if _, err := io.Copy(io.MultiWriter(tmp, hasher), r); err != nil {
		_ = os.Remove(tmp.Name())
		return "", "", fmt.Errorf("failed to write file: %w", err)
	}
	return tmp.Name(), hex.EncodeToString(hasher.Sum(nil)), nil
}

func objectName(fh *multipart.FileHeader, shaHex string) string {
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if ext == "" {
		ext = ".pdf"
	}
	return shaHex + ext
}

func storeToLocal(tmpPath string, fh *multipart.FileHeader, shaHex string) (string, error) {
	baseDir := config.Cfg.Storage.LocalDir
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create storage dir: %w", err)
	}

	src, err := os.Open(tmpPath)
	if err != nil {
		return "", err
	}
	defer src.Close()

	finalPath := filepath.Join(baseDir, objectName(fh, shaHex))
	dst, err := os.Create(finalPath)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	if err := dst.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize file: %w", err)
	}
	return finalPath, nil
}

func storeToS3(ctx context.Context, tmpPath string, fh *multipart.FileHeader, shaHex string) (string, error) {
	f, err := os.Open(tmpPath)
	if err != nil {
		return "", err
	}
	defer f.Close()
	return s3client.Upload(ctx, config.Cfg.S3.Bucket, "documents/"+objectName(fh, shaHex), "application/pdf", f)
}
