package users

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/shared/auth"
	"resume-builder/internal/shared/server/middleware"
	"resume-builder/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc       *Service
	JWTSecret string
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, jwtSecret string) *Handler {
	return &Handler{Svc: svc, JWTSecret: jwtSecret}
}

// RegisterPublicRoutes attaches unauthenticated auth routes.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/auth/signup", h.signup)
	rg.POST("/auth/login", h.login)
}

// RegisterRoutes attaches authenticated account routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/auth/me", h.me)
}

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (h *Handler) signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	user, err := h.Svc.SignUp(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		var verr *ValidationError
		switch {
		case errors.As(err, &verr):
			respond.Error(c, http.StatusBadRequest, "Validation failed", verr.Fields)
		case errors.Is(err, ErrDuplicateEmail):
			respond.Error(c, http.StatusConflict, "User with this email already exists", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "Internal server error", nil)
		}
		return
	}

	token, err := auth.SignJWT(user.ID, user.Email, h.JWTSecret)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "Server configuration error", nil)
		return
	}

	respond.Success(c, http.StatusCreated, gin.H{
		"token": token,
		"user":  userResponse{ID: user.ID, Name: user.Name, Email: user.Email},
	}, "User created successfully")
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	user, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		var verr *ValidationError
		switch {
		case errors.As(err, &verr):
			respond.Error(c, http.StatusBadRequest, "Validation failed", verr.Fields)
		case errors.Is(err, ErrInvalidCredentials):
			respond.Error(c, http.StatusUnauthorized, "Invalid email or password", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "Internal server error", nil)
		}
		return
	}

	token, err := auth.SignJWT(user.ID, user.Email, h.JWTSecret)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "Server configuration error", nil)
		return
	}

	respond.Success(c, http.StatusOK, gin.H{
		"token": token,
		"user":  userResponse{ID: user.ID, Name: user.Name, Email: user.Email},
	}, "Login successful")
}

func (h *Handler) me(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	user, err := h.Svc.GetByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "User not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "Failed to load user", nil)
		return
	}

	respond.Success(c, http.StatusOK, userResponse{ID: user.ID, Name: user.Name, Email: user.Email}, "")
}
