package document

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	s3client "mcq-service/pkg/s3"
)

var (
	// ErrNotFound means the path does not point at a readable file or object.
	ErrNotFound = errors.New("document not found")
	// ErrNoText means the document was read but yielded no text.
	ErrNoText = errors.New("no text extracted")
)

// FetchToLocalTemp copies a local file or an s3://bucket/key object to a temporary file
// and returns its path with a cleanup function.
func FetchToLocalTemp(ctx context.Context, filePath string) (string, func(), error) {
	noop := func() {}
	ext := strings.ToLower(filepath.Ext(filePath))
	if ext == "" {
		ext = ".pdf"
	}

	var src io.ReadCloser
	if strings.HasPrefix(filePath, "s3://") {
		u, err := url.Parse(filePath)
		if err != nil {
			return "", noop, err
		}
		body, err := s3client.Download(ctx, u.Host, strings.TrimPrefix(u.Path, "/"))
		if err != nil {
			return "", noop, fmt.Errorf("%w: %v", ErrNotFound, err)
		}
		src = body
	} else {
		abs := filePath
		if !filepath.IsAbs(abs) {
			cwd, _ := os.Getwd()
			abs = filepath.Join(cwd, filePath)
		}
		f, err := os.Open(abs)
		if err != nil {
			return "", noop, fmt.Errorf("%w: %v", ErrNotFound, err)
		}
		src = f
	}
	defer src.Close()

	tmp, err := os.CreateTemp("", "mcq-*"+ext)
	if err != nil {
		return "", noop, err
	}
	if _, err := io.Copy(tmp, src); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", noop, err
	}
	tmp.Close()
	return tmp.Name(), func() { _ = os.Remove(tmp.Name()) }, nil
}
