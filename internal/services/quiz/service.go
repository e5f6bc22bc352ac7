package quiz

import (
	"context"
	"errors"
	"fmt"

	"mcq-service/config"
	"mcq-service/internal/core/document"
	"mcq-service/internal/core/mcq"
	"mcq-service/internal/core/scoring"
	"mcq-service/internal/database/model"
	"mcq-service/pkg/logger"

	"github.com/sirupsen/logrus"
)

var (
	ErrMissingSource    = errors.New("PdfPath or DocID is required")
	ErrDocumentNotFound = errors.New("document not found")
	ErrNoQuestions      = errors.New("no questions could be generated")
	// ErrDocumentFailed wraps text loading failures; the cause stays reachable
	// through errors.Is (document.ErrNotFound, document.ErrNoText, ...).
	ErrDocumentFailed = errors.New("document could not be read")
)

const maxResults = 100

type QuestionGenerator interface {
	Generate(ctx context.Context, text string, numQuestions int) ([]mcq.Question, error)
}

// TextLoader returns the cleaned text of the document at path.
type TextLoader func(ctx context.Context, path string) (string, error)

type GenerateRequest struct {
	PdfPath           string
	DocID             int64
	NumberOfQuestions int
}

type Service struct {
	generator QuestionGenerator
	loadText  TextLoader
}

type Option func(*Service)

func WithTextLoader(l TextLoader) Option {
	return func(s *Service) { s.loadText = l }
}

func NewService(generator QuestionGenerator, opts ...Option) *Service {
	s := &Service{generator: generator, loadText: document.Load}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Generate loads the requested document and builds questions from it. A stored
// document is marked ready or failed depending on the outcome.
func (s *Service) Generate(ctx context.Context, req GenerateRequest) ([]mcq.Question, error) {
	path := req.PdfPath
	if req.DocID != 0 {
		p, err := DocumentPath(ctx, req.DocID)
		if err != nil {
			return nil, err
		}
		path = p
	}
	if path == "" {
		return nil, ErrMissingSource
	}

	log := logger.ForModule(config.ModuleMCQ).WithFields(logrus.Fields{
		"doc_id": req.DocID,
		"path":   path,
	})

	questions, err := s.generate(ctx, path, req.NumberOfQuestions)
	if req.DocID != 0 {
		st := StatusReady
		if err != nil {
			st = StatusFailed
		}
		if uerr := UpdateDocumentStatus(ctx, req.DocID, st); uerr != nil {
			log.WithError(uerr).Warn("update document status failed")
		}
	}
	if err != nil {
		return nil, err
	}
	log.WithField("questions", len(questions)).Info("questions generated")
	return questions, nil
}

func (s *Service) generate(ctx context.Context, path string, n int) ([]mcq.Question, error) {
	text, err := s.loadText(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDocumentFailed, err)
	}
	questions, err := s.generator.Generate(ctx, text, n)
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}
	return questions, nil
}

// Evaluate scores a raw submission. When docID is set the result is stored; storage
// failures are logged and do not affect the returned score.
func (s *Service) Evaluate(ctx context.Context, body []byte, docID *int64, requestID string) (scoring.Result, error) {
	answers, err := scoring.ParseAnswers(body)
	if err != nil {
		return scoring.Result{}, err
	}
	res := scoring.Score(answers)
	if docID == nil {
		return res, nil
	}
	if err := InsertQuizResult(ctx, *docID, requestID, res.Score, res.Total); err != nil {
		logger.ForModule(config.ModuleScoring).
			WithError(err).
			WithField("doc_id", *docID).
			Warn("store quiz result failed")
	}
	return res, nil
}

// Results lists the newest stored scores for a document, at most maxResults.
func (s *Service) Results(ctx context.Context, docID int64, limit int) ([]model.QuizResult, error) {
	if limit <= 0 || limit > maxResults {
		limit = maxResults
	}
	return RecentResults(ctx, docID, limit)
}
