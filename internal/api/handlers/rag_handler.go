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

type RAGHandler struct {
	ragService        *service.RAGService
	validationService *service.ValidationService
	validate          *validator.Validate
	logger            *zap.Logger
}

func NewRAGHandler(ragService *service.RAGService, validationService *service.ValidationService, logger *zap.Logger) *RAGHandler {
	return &RAGHandler{
		ragService:        ragService,
		validationService: validationService,
		validate:          validator.New(),
		logger:            logger,
	}
}

// Retrieve godoc
// @Summary Retrieve similar examples
// @Description Semantic retrieval of knowledge entries matching the query and filters
// @Tags retrieval
// @Accept json
// @Produce json
// @Param request body dto.RetrieveRequest true "Retrieval request"
// @Success 200 {object} dto.RetrieveResponse
// @Failure 400 {object} map[string]string
// @Router /api/v1/retrieve [post]
func (h *RAGHandler) Retrieve(c *fiber.Ctx) error {
	q, err := h.parseQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	results, err := h.ragService.RetrieveSimilarExamples(c.Context(), *q)
	if err != nil {
		return h.serviceError(c, err)
	}
	return c.JSON(dto.FromRankedResults(results))
}

// HybridSearch godoc
// @Summary Hybrid search
// @Description Retrieval fusing semantic similarity with lexical keyword overlap
// @Tags retrieval
// @Accept json
// @Produce json
// @Param request body dto.RetrieveRequest true "Retrieval request"
// @Success 200 {object} dto.RetrieveResponse
// @Failure 400 {object} map[string]string
// @Router /api/v1/hybrid-search [post]
func (h *RAGHandler) HybridSearch(c *fiber.Ctx) error {
	q, err := h.parseQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	results, err := h.ragService.HybridSearch(c.Context(), *q)
	if err != nil {
		return h.serviceError(c, err)
	}
	return c.JSON(dto.FromRankedResults(results))
}

// Validate godoc
// @Summary Validate generated text
// @Description Check generated text against the retrieved context it was produced from
// @Tags validation
// @Accept json
// @Produce json
// @Param request body dto.ValidateRequest true "Validation request"
// @Success 200 {object} dto.ValidateResponse
// @Failure 400 {object} map[string]string
// @Router /api/v1/validate [post]
func (h *RAGHandler) Validate(c *fiber.Ctx) error {
	var req dto.ValidateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	ids := make([]uuid.UUID, 0, len(req.ContextIDs))
	for _, raw := range req.ContextIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid context entry id"})
		}
		ids = append(ids, id)
	}

	entries, err := h.ragService.ContextEntries(c.Context(), ids)
	if err != nil {
		return h.serviceError(c, err)
	}

	verdict := h.validationService.ValidateGeneration(c.Context(), req.Query, req.GeneratedText, entries)
	return c.JSON(dto.ValidateResponse{
		IsValid:    verdict.IsValid,
		Reason:     string(verdict.Reason),
		Detail:     verdict.Detail,
		Confidence: verdict.Confidence,
	})
}

func (h *RAGHandler) parseQuery(c *fiber.Ctx) (*models.Query, error) {
	var req dto.RetrieveRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, errors.New("invalid request body")
	}
	if err := h.validate.Struct(&req); err != nil {
		return nil, err
	}

	q := models.Query{Text: req.Query, TopK: req.TopK}
	if req.Profession != "" {
		p, err := models.ParseProfession(req.Profession)
		if err != nil {
			return nil, err
		}
		q.Filter.Profession = &p
	}
	if req.CVSection != "" {
		cs, err := models.ParseCVSection(req.CVSection)
		if err != nil {
			return nil, err
		}
		q.Filter.CVSection = &cs
	}
	if req.ContentType != "" {
		ct, err := models.ParseContentType(req.ContentType)
		if err != nil {
			return nil, err
		}
		q.Filter.ContentType = &ct
	}
	return &q, nil
}

func (h *RAGHandler) serviceError(c *fiber.Ctx, err error) error {
	var domainErr *service.DomainError
	if errors.As(err, &domainErr) {
		switch domainErr.Type {
		case service.ErrorTypeInput:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": domainErr.Message})
		case service.ErrorTypeDependency:
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": domainErr.Message})
		}
	}
	h.logger.Error("Retrieval request failed", zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
}
