package handlers

import (
	"errors"

	"github.com/tessnimetteib/cv-generator-project2/internal/dto"
	"github.com/tessnimetteib/cv-generator-project2/internal/models"
	"github.com/tessnimetteib/cv-generator-project2/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type FeedbackHandler struct {
	feedbackService *service.FeedbackService
	validate        *validator.Validate
	logger          *zap.Logger
}

func NewFeedbackHandler(feedbackService *service.FeedbackService, logger *zap.Logger) *FeedbackHandler {
	return &FeedbackHandler{
		feedbackService: feedbackService,
		validate:        validator.New(),
		logger:          logger,
	}
}

// Submit godoc
// @Summary Submit generation feedback
// @Description Record a 1-5 rating of a generation event
// @Tags feedback
// @Accept json
// @Produce json
// @Param request body dto.FeedbackRequest true "Feedback"
// @Success 201 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Router /api/v1/feedback [post]
func (h *FeedbackHandler) Submit(c *fiber.Ctx) error {
	var req dto.FeedbackRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	generationID, err := uuid.Parse(req.GenerationID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid generation id"})
	}
	profession, err := models.ParseProfession(req.Profession)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	section, err := models.ParseCVSection(req.CVSection)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	fb := &models.FeedbackRecord{
		GenerationID:         generationID,
		Profession:           profession,
		CVSection:            section,
		Rating:               req.Rating,
		Comment:              req.Comment,
		SuggestedImprovement: req.SuggestedImprovement,
	}

	if err := h.feedbackService.Record(c.Context(), fb); err != nil {
		if errors.Is(err, service.ErrInvalidRating) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": service.ErrInvalidRating.Message})
		}
		h.logger.Error("Failed to record feedback", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to record feedback"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": "recorded"})
}
