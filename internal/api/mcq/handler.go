package mcq

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"mcq-service/config"
	"mcq-service/internal/core/document"
	"mcq-service/internal/core/scoring"
	"mcq-service/internal/services/quiz"
	"mcq-service/pkg/apperror"
	"mcq-service/pkg/apperror/status"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

var validate = validator.New()

type generateRequest struct {
	PdfPath           string `json:"PdfPath"`
	DocID             int64  `json:"DocID" validate:"gte=0"`
	NumberOfQuestions *int   `json:"NumberOfQuestions" validate:"omitnil,min=1"`
}

type Handler struct {
	svc *quiz.Service
}

func NewHandler(svc *quiz.Service) *Handler {
	return &Handler{svc: svc}
}

func requestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), time.Duration(config.Cfg.Server.RequestTimeoutSeconds)*time.Second)
}

// questionCount applies the configured default and upper bound.
func questionCount(requested *int) int {
	n := config.Cfg.Generator.DefaultQuestions
	if requested != nil {
		n = *requested
	}
	if max := config.Cfg.Generator.MaxQuestions; n > max {
		n = max
	}
	return n
}

// HandleGenerate responds with the bare question array.
func (h *Handler) HandleGenerate(c fiber.Ctx) error {
	var req generateRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return apperror.BadRequest(config.ModuleMCQ, c, status.InvalidRequestBody, "Invalid request body", err.Error())
	}
	if err := validate.Struct(req); err != nil {
		return apperror.BadRequest(config.ModuleMCQ, c, status.InvalidParams, "Invalid parameters", err.Error())
	}
	req.PdfPath = strings.TrimSpace(req.PdfPath)

	ctx, cancel := requestContext()
	defer cancel()
	questions, err := h.svc.Generate(ctx, quiz.GenerateRequest{
		PdfPath:           req.PdfPath,
		DocID:             req.DocID,
		NumberOfQuestions: questionCount(req.NumberOfQuestions),
	})
	switch {
	case err == nil:
		return c.Status(fiber.StatusOK).JSON(questions)
	case errors.Is(err, quiz.ErrMissingSource),
		errors.Is(err, quiz.ErrDocumentNotFound),
		errors.Is(err, document.ErrNotFound):
		return apperror.BadRequest(config.ModuleMCQ, c, status.GeneratePDFNotFound, "PDF file not found", "Invalid or missing PdfPath")
	case errors.Is(err, document.ErrNoText):
		return apperror.BadRequest(config.ModuleMCQ, c, status.GenerateNoText, "No text extracted from PDF", "PDF may be empty or unreadable")
	case errors.Is(err, quiz.ErrNoQuestions):
		return apperror.BadRequest(config.ModuleMCQ, c, status.GenerateNoQuestions, "No questions could be generated", "Insufficient suitable content in PDF")
	case errors.Is(err, quiz.ErrDocumentFailed):
		return apperror.InternalError(config.ModuleDocument, c, "Server error", status.New(status.GenerateDocumentFailed, err))
	default:
		return apperror.InternalError(config.ModuleMCQ, c, "Server error", status.New(status.GenerateDependency, err))
	}
}

func parseDocID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	return id, err == nil && id > 0
}

// HandleEvaluate scores a submission; ?doc_id=N also stores the result.
func (h *Handler) HandleEvaluate(c fiber.Ctx) error {
	var docID *int64
	if raw := strings.TrimSpace(c.Query("doc_id")); raw != "" {
		id, ok := parseDocID(raw)
		if !ok {
			return apperror.BadRequest(config.ModuleScoring, c, status.InvalidParams, "Invalid doc_id", raw)
		}
		docID = &id
	}

	ctx, cancel := requestContext()
	defer cancel()
	res, err := h.svc.Evaluate(ctx, c.Body(), docID, c.Get("X-Request-ID"))
	switch {
	case err == nil:
		return c.Status(fiber.StatusOK).JSON(res)
	case errors.Is(err, scoring.ErrInvalidPayload):
		return apperror.BadRequest(config.ModuleScoring, c, status.EvaluateInvalidPayload, "Invalid payload", "Payload must be a list of answer objects")
	case errors.Is(err, scoring.ErrInvalidFormat):
		return apperror.BadRequest(config.ModuleScoring, c, status.EvaluateInvalidFormat, "Invalid answer format", "Each answer must have selectedOptionIndex and correctOptionIndex")
	case errors.Is(err, scoring.ErrInvalidTypes):
		return apperror.BadRequest(config.ModuleScoring, c, status.EvaluateInvalidTypes, "Invalid answer types", err.Error())
	default:
		return apperror.InternalError(config.ModuleScoring, c, "Evaluation error", err)
	}
}

// HandleResults lists stored scores for ?doc_id=N, newest first; ?limit caps the count.
func (h *Handler) HandleResults(c fiber.Ctx) error {
	raw := strings.TrimSpace(c.Query("doc_id"))
	docID, ok := parseDocID(raw)
	if !ok {
		return apperror.BadRequest(config.ModuleScoring, c, status.MissingParams, "doc_id is required", raw)
	}
	limit, _ := strconv.Atoi(c.Query("limit"))

	ctx, cancel := requestContext()
	defer cancel()
	results, err := h.svc.Results(ctx, docID, limit)
	switch {
	case err == nil:
		return apperror.Success(c, "results ok", results)
	case errors.Is(err, quiz.ErrDocumentNotFound):
		return apperror.NotFound(config.ModuleScoring, c, status.EvaluateDocumentNotFound, "document not found")
	default:
		return apperror.InternalError(config.ModuleScoring, c, "Server error", err)
	}
}
