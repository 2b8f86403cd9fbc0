package resumes

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/shared/server/middleware"
	"resume-builder/internal/shared/server/respond"
)

// MaxUploadBytes bounds the multipart request body for uploads.
const MaxUploadBytes = 10 << 20

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches authenticated resume routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/resumes", h.list)
	rg.POST("/resumes", h.create)
	rg.POST("/resumes/upload", h.upload)
	rg.GET("/resumes/:id", h.get)
	rg.PUT("/resumes/:id", h.update)
	rg.DELETE("/resumes/:id", h.delete)
}

func (h *Handler) create(c *gin.Context) {
	var payload DraftPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respond.Error(c, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	draft, err := h.Svc.Create(c.Request.Context(), middleware.UserIDFromContext(c), payload)
	if err != nil {
		respondResumeError(c, err)
		return
	}
	c.Set("resumeId", draft.ID)
	respond.Success(c, http.StatusCreated, draft, "Resume created successfully")
}

func (h *Handler) list(c *gin.Context) {
	drafts, err := h.Svc.List(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		respondResumeError(c, err)
		return
	}

	summaries := make([]SummaryResponse, 0, len(drafts))
	for _, draft := range drafts {
		summaries = append(summaries, toSummary(draft))
	}
	respond.Success(c, http.StatusOK, summaries, "")
}

func (h *Handler) get(c *gin.Context) {
	id := c.Param("id")
	c.Set("resumeId", id)

	draft, err := h.Svc.Get(c.Request.Context(), middleware.UserIDFromContext(c), id)
	if err != nil {
		respondResumeError(c, err)
		return
	}
	respond.Success(c, http.StatusOK, draft, "")
}

func (h *Handler) update(c *gin.Context) {
	id := c.Param("id")
	c.Set("resumeId", id)

	var payload DraftPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respond.Error(c, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	draft, err := h.Svc.Update(c.Request.Context(), middleware.UserIDFromContext(c), id, payload)
	if err != nil {
		respondResumeError(c, err)
		return
	}
	respond.Success(c, http.StatusOK, draft, "Resume updated successfully")
}

func (h *Handler) delete(c *gin.Context) {
	id := c.Param("id")
	c.Set("resumeId", id)

	if err := h.Svc.Delete(c.Request.Context(), middleware.UserIDFromContext(c), id); err != nil {
		respondResumeError(c, err)
		return
	}
	respond.Success(c, http.StatusOK, nil, "Resume deleted successfully")
}

func (h *Handler) upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxUploadBytes)

	file, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "No file uploaded", nil)
		return
	}

	src, err := file.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "Unable to read uploaded file", nil)
		return
	}
	defer src.Close()

	title := c.PostForm("title")
	draft, err := h.Svc.Upload(c.Request.Context(), middleware.UserIDFromContext(c), file.Filename, title, src)
	if err != nil {
		respondResumeError(c, err)
		return
	}
	c.Set("resumeId", draft.ID)
	respond.Success(c, http.StatusCreated, draft, "Resume uploaded successfully")
}

func respondResumeError(c *gin.Context, err error) {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		respond.Error(c, http.StatusBadRequest, "Validation failed", verr.Fields)
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "Resume not found", nil)
	case errors.Is(err, ErrStoreUnavailable):
		respond.Error(c, http.StatusServiceUnavailable, "Resume store is temporarily unavailable", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "Internal server error", nil)
	}
}
