package users

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"cv-backend/internal/shared/metrics"
	"cv-backend/internal/shared/server/respond"
	"cv-backend/internal/shared/storage/memdb"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/users", h.create)
	rg.GET("/users", h.list)
	rg.GET("/users/:id", h.get)
	rg.PATCH("/users/:id", h.update)
}

type createRequest struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	Email      string            `json:"email"`
	Attributes map[string]string `json:"attributes"`
}

type updateRequest struct {
	Name       *string           `json:"name"`
	Email      *string           `json:"email"`
	Attributes map[string]string `json:"attributes"`
}

func (h *Handler) create(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	user, err := h.Svc.Create(c.Request.Context(), User{
		ID:         req.ID,
		Name:       req.Name,
		Email:      req.Email,
		Attributes: req.Attributes,
	})
	if err != nil {
		respondUserError(c, err)
		return
	}
	metrics.IncUserCreated()
	respond.JSON(c, http.StatusCreated, user)
}

func (h *Handler) get(c *gin.Context) {
	user, err := h.Svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondUserError(c, err)
		return
	}
	respond.OK(c, user)
}

func (h *Handler) update(c *gin.Context) {
	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	user, err := h.Svc.Update(c.Request.Context(), c.Param("id"), Update{
		Name:       req.Name,
		Email:      req.Email,
		Attributes: req.Attributes,
	})
	if err != nil {
		respondUserError(c, err)
		return
	}
	metrics.IncUserUpdated()
	respond.OK(c, user)
}

func (h *Handler) list(c *gin.Context) {
	list, err := h.Svc.List(c.Request.Context())
	if err != nil {
		respondUserError(c, err)
		return
	}
	respond.OK(c, gin.H{"users": list})
}

func respondUserError(c *gin.Context, err error) {
	metrics.IncUserRejected()
	switch {
	case errors.Is(err, ErrMissingField), errors.Is(err, ErrInvalidEmail):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "user not found", nil)
	case errors.Is(err, ErrDuplicateID):
		respond.Error(c, http.StatusConflict, "duplicate_id", "user id already exists", nil)
	case errors.Is(err, memdb.ErrNotConnected):
		respond.Error(c, http.StatusServiceUnavailable, "store_unavailable", "store is not connected", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to process user request", nil)
	}
}
