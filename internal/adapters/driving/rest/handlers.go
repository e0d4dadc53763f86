package rest

import (
	"encoding/base64"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/custodia-labs/menumem/internal/core/domain"
)

// Handler serves the menu, ingredient and quiz routes.
type Handler struct {
	ports *Ports
}

// NewHandler creates a handler over the given ports.
func NewHandler(ports *Ports) *Handler {
	return &Handler{ports: ports}
}

// ParseMenu extracts dishes from menu text without storing them.
func (h *Handler) ParseMenu() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req parseRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		if h.ports.Ingest == nil {
			writeError(c, domain.ErrLLMUnavailable)
			return
		}

		ext, err := h.ports.Ingest.ParseMenu(c.Request.Context(), req.Text)
		if err != nil {
			writeError(c, err)
			return
		}

		resp := ParseResponse{
			Items:   make([]DraftDTO, len(ext.Items)),
			Skipped: make([]SkippedDTO, len(ext.Skipped)),
		}
		for i, d := range ext.Items {
			resp.Items[i] = draftDTO(d)
		}
		for i, sk := range ext.Skipped {
			resp.Skipped[i] = SkippedDTO{Index: sk.Index, Reason: sk.Reason}
		}
		c.JSON(http.StatusOK, resp)
	}
}

// Upload stores a batch of drafts. The status is 200 when every item was
// stored, 207 when some were, and 422 when none were.
func (h *Handler) Upload() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req uploadRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		if h.ports.Ingest == nil {
			writeError(c, domain.ErrNotImplemented)
			return
		}

		drafts := make([]domain.DraftDish, len(req.Items))
		for i, item := range req.Items {
			drafts[i] = item.toDomain()
		}

		report, err := h.ports.Ingest.Upload(c.Request.Context(), drafts)
		if err != nil {
			writeError(c, err)
			return
		}

		status := http.StatusOK
		switch {
		case report.Failed() == 0:
		case report.Succeeded() == 0:
			status = http.StatusUnprocessableEntity
		default:
			status = http.StatusMultiStatus
		}
		c.JSON(status, uploadResponse(report))
	}
}

// RecognizeText runs OCR over a base64-encoded image.
func (h *Handler) RecognizeText() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ocrRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		image, err := decodeImage(req.Base64Image)
		if err != nil {
			badRequest(c, err)
			return
		}
		if h.ports.Ingest == nil {
			writeError(c, domain.ErrOCRUnavailable)
			return
		}

		text, err := h.ports.Ingest.RecognizeText(c.Request.Context(), image)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, OCRResponse{Text: text})
	}
}

// Quiz generates a quiz over the stored menu.
func (h *Handler) Quiz() gin.HandlerFunc {
	return func(c *gin.Context) {
		var opts domain.QuizOptions
		if s := c.Query("seed"); s != "" {
			seed, err := strconv.ParseUint(s, 10, 64)
			if err != nil {
				badRequest(c, errors.New("seed must be a non-negative integer"))
				return
			}
			opts.Seed = seed
		}
		if s := c.Query("limit"); s != "" {
			limit, err := strconv.Atoi(s)
			if err != nil || limit < 0 {
				badRequest(c, errors.New("limit must be a non-negative integer"))
				return
			}
			opts.Limit = limit
		}

		quiz, err := h.ports.Quiz.Generate(c.Request.Context(), opts)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, questionDTOs(quiz))
	}
}

// ListMenu returns every stored dish.
func (h *Handler) ListMenu() gin.HandlerFunc {
	return func(c *gin.Context) {
		dishes, err := h.ports.Menu.List(c.Request.Context())
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, dishDTOs(dishes))
	}
}

// AddDish stores one manually entered dish.
func (h *Handler) AddDish() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req DraftDTO
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}

		dish, err := h.ports.Menu.AddDish(c.Request.Context(), req.toDomain())
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, dishDTO(*dish))
	}
}

// Categories returns the distinct dish categories.
func (h *Handler) Categories() gin.HandlerFunc {
	return func(c *gin.Context) {
		categories, err := h.ports.Menu.Categories(c.Request.Context())
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, nonNil(categories))
	}
}

// ListIngredients returns the ingredient corpus.
func (h *Handler) ListIngredients() gin.HandlerFunc {
	return func(c *gin.Context) {
		ingredients, err := h.ports.Menu.Ingredients(c.Request.Context())
		if err != nil {
			writeError(c, err)
			return
		}

		out := make([]IngredientDTO, len(ingredients))
		for i, ing := range ingredients {
			out[i] = IngredientDTO{ID: ing.ID, Name: ing.Name}
		}
		c.JSON(http.StatusOK, out)
	}
}

// AddIngredient returns the corpus entry for a name, creating it when absent.
func (h *Handler) AddIngredient() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ingredientRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}

		ing, err := h.ports.Menu.AddIngredient(c.Request.Context(), req.Name)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, IngredientDTO{ID: ing.ID, Name: ing.Name})
	}
}

// LinkIngredients adds ingredients to a dish by name and by id.
func (h *Handler) LinkIngredients() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req linkRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		if len(req.Names) == 0 && len(req.IngredientIDs) == 0 {
			badRequest(c, errors.New("names or ingredientIds required"))
			return
		}

		ctx := c.Request.Context()
		dishID := c.Param("id")

		var (
			dish *domain.Dish
			err  error
		)
		if len(req.Names) > 0 {
			if dish, err = h.ports.Menu.AddIngredients(ctx, dishID, req.Names); err != nil {
				writeError(c, err)
				return
			}
		}
		if len(req.IngredientIDs) > 0 {
			if dish, err = h.ports.Menu.LinkIngredients(ctx, dishID, req.IngredientIDs); err != nil {
				writeError(c, err)
				return
			}
		}
		c.JSON(http.StatusOK, dishDTO(*dish))
	}
}

// Health reports liveness and the configured providers.
func (h *Handler) Health() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, HealthResponse{
			Status: "ok",
			LLM:    h.ports.LLMName,
			OCR:    h.ports.OCRName,
		})
	}
}

// decodeImage accepts plain base64 or a data URL.
func decodeImage(s string) ([]byte, error) {
	if strings.HasPrefix(s, "data:") {
		if i := strings.Index(s, ","); i >= 0 {
			s = s[i+1:]
		}
	}
	s = strings.TrimSpace(s)

	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		data, err = base64.RawStdEncoding.DecodeString(s)
	}
	if err != nil {
		return nil, errors.New("base64Image is not valid base64")
	}
	return data, nil
}
