package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/taskloop/taskloop/internal/application"
	"github.com/taskloop/taskloop/internal/domain/entity"
	"github.com/taskloop/taskloop/internal/interface/middleware"
	"github.com/taskloop/taskloop/pkg/response"
	"github.com/taskloop/taskloop/pkg/validation"
)

type UserHandler struct {
	Svc    *application.UserService
	Logger *logrus.Logger
}

func NewUserHandler(svc *application.UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *UserHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Error validating information.", validation.ToDetails(err))
		return
	}

	u, err := h.Svc.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, entity.ErrDuplicateEmail):
			response.Error(c, http.StatusBadRequest, "There is already an user with this email.", nil)
		case errors.Is(err, entity.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, "Error validating information.", nil)
		default:
			h.fail(c, err, "Error on creating user.")
		}
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"id": u.ID})
}

func (h *UserHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Error validating information.", validation.ToDetails(err))
		return
	}

	res, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, application.ErrInvalidCredentials) {
			response.Error(c, http.StatusUnauthorized, "Invalid email or password.", nil)
			return
		}
		h.fail(c, err, "Error login user.")
		return
	}
	response.JSON(c, http.StatusOK, res)
}

// List answers with every directory entry plus the identity that made the
// request, echoing the validated claim.
func (h *UserHandler) List(c *gin.Context) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Invalid authentication token.", nil)
		return
	}
	users, err := h.Svc.ListAll(c.Request.Context())
	if err != nil {
		h.fail(c, err, "Error fetching users.")
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"users": users, "request_made_by": claims})
}

// fail hides internal detail behind a generic message; store outages get
// their own status so clients can retry later.
func (h *UserHandler) fail(c *gin.Context, err error, msg string) {
	if h.Logger != nil {
		h.Logger.WithError(err).WithField("request_id", c.GetString("request_id")).Error(msg)
	}
	if errors.Is(err, entity.ErrStoreUnavailable) {
		response.Error(c, http.StatusServiceUnavailable, "Store unavailable, please retry later.", nil)
		return
	}
	response.Error(c, http.StatusInternalServerError, msg, nil)
}
