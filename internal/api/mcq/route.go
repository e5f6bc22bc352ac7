package mcq

import (
	"mcq-service/internal/services/quiz"

	"github.com/gofiber/fiber/v3"
)

// RegisterRoutes registers question generation and scoring routes.
func RegisterRoutes(r fiber.Router, svc *quiz.Service) {
	h := NewHandler(svc)

	r.Post("/generate-mcq", h.HandleGenerate)
	r.Post("/evaluate-mcq", h.HandleEvaluate)
	r.Get("/results", h.HandleResults)
}
