package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/artem13815/tutor/api/http/presenter"
	"github.com/artem13815/tutor/pkg/content"
	"github.com/artem13815/tutor/pkg/log"
	"github.com/artem13815/tutor/pkg/security/jwt"
	"github.com/artem13815/tutor/pkg/tutor"
)

const msgProvidersUnavailable = "AI models are currently unavailable."

type AIHandler struct {
	svc tutor.UseCase
}

func NewAIHandler(svc tutor.UseCase) *AIHandler {
	return &AIHandler{svc: svc}
}

type askRequest struct {
	Question    string  `json:"question"`
	SlideDeckID *string `json:"slide_deck_id,omitempty"`
	SlideNumber *int    `json:"slide_number,omitempty"`
}

type explainSlideRequest struct {
	SlideDeckID string `json:"slide_deck_id"`
	SlideNumber int    `json:"slide_number"`
}

// Ask answers a free-form question, optionally grounded on an uploaded deck or one of its slides.
// @Summary Ask the AI tutor
// @Tags    ai
// @Accept  json
// @Produce json
// @Param   input body askRequest true "question and optional slide reference"
// @Security BearerAuth
// @Success 200 {object} tutor.AnswerResult
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Failure 500 {object} presenter.ErrorResponse
// @Router  /ai/ask [post]
func (h *AIHandler) Ask(c *fiber.Ctx) error {
	owner, err := jwt.UserID(c)
	if err != nil {
		return presenter.Error(c, http.StatusUnauthorized, "unauthorized")
	}
	var req askRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	if strings.TrimSpace(req.Question) == "" {
		return presenter.Error(c, http.StatusBadRequest, "question cannot be empty")
	}

	var ref *content.Reference
	if req.SlideDeckID != nil && strings.TrimSpace(*req.SlideDeckID) != "" {
		deckID, err := uuid.Parse(strings.TrimSpace(*req.SlideDeckID))
		if err != nil {
			return presenter.Error(c, http.StatusBadRequest, "invalid slide_deck_id")
		}
		ref = &content.Reference{OwnerID: owner, DeckID: deckID}
		if req.SlideNumber != nil {
			if *req.SlideNumber < 1 {
				return presenter.Error(c, http.StatusBadRequest, "slide_number must be at least 1")
			}
			ref.Slide = *req.SlideNumber
		}
	} else if req.SlideNumber != nil {
		return presenter.Error(c, http.StatusBadRequest, "slide_number requires slide_deck_id")
	}

	res, err := h.svc.Ask(c.UserContext(), req.Question, ref)
	if err != nil {
		return h.fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, res)
}

// ExplainSlide explains one slide of an uploaded deck.
// @Summary Explain a slide
// @Tags    ai
// @Accept  json
// @Produce json
// @Param   input body explainSlideRequest true "slide reference"
// @Security BearerAuth
// @Success 200 {object} tutor.AnswerResult
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Failure 500 {object} presenter.ErrorResponse
// @Router  /ai/explain-slide [post]
func (h *AIHandler) ExplainSlide(c *fiber.Ctx) error {
	owner, err := jwt.UserID(c)
	if err != nil {
		return presenter.Error(c, http.StatusUnauthorized, "unauthorized")
	}
	var req explainSlideRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	deckID, err := uuid.Parse(strings.TrimSpace(req.SlideDeckID))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid slide_deck_id")
	}
	if req.SlideNumber < 1 {
		return presenter.Error(c, http.StatusBadRequest, "slide_number must be at least 1")
	}

	res, err := h.svc.ExplainSlide(c.UserContext(), content.Reference{OwnerID: owner, DeckID: deckID, Slide: req.SlideNumber})
	if err != nil {
		return h.fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, res)
}

func (h *AIHandler) fail(c *fiber.Ctx, err error) error {
	logger := log.FromCtx(c.UserContext())
	var agg *tutor.AggregateProviderFailure
	switch {
	case errors.Is(err, tutor.ErrValidation):
		return presenter.Error(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, tutor.ErrNotFound):
		return presenter.Error(c, http.StatusNotFound, "slide deck or slide not found")
	case errors.As(err, &agg):
		logger.Error().Err(err).Msg("answer failed")
		return presenter.Error(c, http.StatusInternalServerError, msgProvidersUnavailable)
	default:
		logger.Error().Err(err).Msg("answer failed")
		return presenter.Error(c, http.StatusInternalServerError, "failed to generate answer")
	}
}
