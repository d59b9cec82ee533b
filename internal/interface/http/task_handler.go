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

type TaskHandler struct {
	Svc    *application.TaskService
	Logger *logrus.Logger
}

func NewTaskHandler(svc *application.TaskService, logger *logrus.Logger) *TaskHandler {
	return &TaskHandler{Svc: svc, Logger: logger}
}

type createTaskRequest struct {
	Description   string `json:"description" binding:"required"`
	AssignedToUid string `json:"assignedToUid" binding:"required"`
}

type setDoneRequest struct {
	// Pointer so an absent field is distinguishable from done=false.
	Done *bool `json:"done" binding:"required"`
}

func (h *TaskHandler) Create(c *gin.Context) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		response.Error(c, http.StatusForbidden, "Invalid authentication token.", nil)
		return
	}
	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Error validating information.", validation.ToDetails(err))
		return
	}

	t, err := h.Svc.Create(c.Request.Context(), claims, req.Description, req.AssignedToUid)
	if err != nil {
		switch {
		case errors.Is(err, entity.ErrInvalidUser):
			response.Error(c, http.StatusBadRequest, "Invalid user information.", nil)
		case errors.Is(err, entity.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, "Error validating information.", nil)
		default:
			h.fail(c, err, "Error on creating task.")
		}
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"id": t.ID})
}

func (h *TaskHandler) ListCreatedBy(c *gin.Context) {
	tasks, err := h.Svc.ListCreatedBy(c.Request.Context(), c.GetString(middleware.CtxUserIDKey))
	if err != nil {
		h.fail(c, err, "Error on trying to fetch tasks created by user.")
		return
	}
	response.JSON(c, http.StatusOK, tasks)
}

func (h *TaskHandler) ListAssignedTo(c *gin.Context) {
	tasks, err := h.Svc.ListAssignedTo(c.Request.Context(), c.GetString(middleware.CtxUserIDKey))
	if err != nil {
		h.fail(c, err, "Error fetching tasks assigned to user.")
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"tasks": tasks})
}

func (h *TaskHandler) SetDone(c *gin.Context) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		response.Error(c, http.StatusForbidden, "Invalid authentication token.", nil)
		return
	}
	var req setDoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Status done not found in the request.", validation.ToDetails(err))
		return
	}

	taskID := c.Param("id")
	if _, err := h.Svc.SetDone(c.Request.Context(), claims, taskID, *req.Done); err != nil {
		switch {
		case errors.Is(err, entity.ErrTaskNotFound):
			response.Error(c, http.StatusNotFound, "Task not found.", nil)
		case errors.Is(err, entity.ErrNotAuthorized):
			response.Error(c, http.StatusForbidden, "Users can only change status when task is assigned to them.", nil)
		default:
			h.fail(c, err, "Error on updating task.")
		}
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"taskUid": taskID})
}

func (h *TaskHandler) Delete(c *gin.Context) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		response.Error(c, http.StatusForbidden, "Invalid authentication token.", nil)
		return
	}

	taskID := c.Param("id")
	n, err := h.Svc.Delete(c.Request.Context(), claims, taskID)
	if err != nil {
		switch {
		case errors.Is(err, entity.ErrTaskNotFound):
			response.Error(c, http.StatusNotFound, "Task not found.", nil)
		case errors.Is(err, entity.ErrNotAuthorized):
			response.Error(c, http.StatusForbidden, "Users can only delete when task is created by them.", nil)
		default:
			h.fail(c, err, "Error on deleting task.")
		}
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"tasksAffected": n})
}

func (h *TaskHandler) fail(c *gin.Context, err error, msg string) {
	if h.Logger != nil {
		h.Logger.WithError(err).WithField("request_id", c.GetString("request_id")).Error(msg)
	}
	if errors.Is(err, entity.ErrStoreUnavailable) {
		response.Error(c, http.StatusServiceUnavailable, "Store unavailable, please retry later.", nil)
		return
	}
	response.Error(c, http.StatusInternalServerError, msg, nil)
}
