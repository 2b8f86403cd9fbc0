package enhance

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/shared/metrics"
	"resume-builder/internal/shared/server/respond"
)

// Handler exposes the text enhancement endpoint. Client may be nil when
// no provider is configured; requests then fail with 503.
type Handler struct {
	Client Client
}

// NewHandler constructs a Handler.
func NewHandler(client Client) *Handler {
	return &Handler{Client: client}
}

// RegisterRoutes attaches authenticated enhancement routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/ai/enhance", h.enhance)
}

type enhanceRequest struct {
	Text string `json:"text"`
	Type string `json:"type"`
}

type enhanceResponse struct {
	Enhanced    string   `json:"enhanced"`
	Suggestions []string `json:"suggestions"`
}

func (h *Handler) enhance(c *gin.Context) {
	var req enhanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if strings.TrimSpace(req.Text) == "" {
		respond.Error(c, http.StatusBadRequest, "Text is required", map[string]string{"text": "Text is required"})
		return
	}
	kind := Kind(req.Type)
	if !kind.Valid() {
		respond.Error(c, http.StatusBadRequest, "Type must be either summary or description", map[string]string{"type": "Type must be either summary or description"})
		return
	}

	if h.Client == nil {
		respond.Error(c, http.StatusServiceUnavailable, "AI enhancement is not configured", nil)
		return
	}

	metrics.IncEnhance()
	started := time.Now()
	enhanced, err := h.Client.Enhance(c.Request.Context(), kind, req.Text)
	metrics.ObserveEnhanceDurationMs(float64(time.Since(started)) / float64(time.Millisecond))
	if err != nil {
		metrics.IncEnhanceFailed()
		respondEnhanceError(c, err)
		return
	}

	respond.Success(c, http.StatusOK, enhanceResponse{
		Enhanced:    enhanced,
		Suggestions: []string{enhanced},
	}, "")
}

func respondEnhanceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotConfigured):
		respond.Error(c, http.StatusServiceUnavailable, "AI enhancement is not configured", nil)
	case errors.Is(err, ErrInvalidAPIKey):
		respond.Error(c, http.StatusServiceUnavailable, "AI service rejected the configured credentials", nil)
	case errors.Is(err, ErrEmptyText):
		respond.Error(c, http.StatusBadRequest, "Text is required", map[string]string{"text": "Text is required"})
	case errors.Is(err, ErrQuotaExceeded), errors.Is(err, ErrPaymentRequired):
		respond.Error(c, http.StatusPaymentRequired, "AI service quota exceeded", nil)
	case errors.Is(err, ErrRateLimited):
		respond.Error(c, http.StatusTooManyRequests, "AI service is rate limiting requests, try again shortly", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "Failed to enhance text", nil)
	}
}
