package modules

import (
	"net/http"

	"github.com/gin-gonic/gin"

	handlers "github.com/taskloop/taskloop/internal/interface/http"
	"github.com/taskloop/taskloop/internal/interface/middleware"
	"github.com/taskloop/taskloop/pkg/helpers"
)

// TaskModule wires the task routes. Every route requires a valid token;
// validation happens in middleware before any store access.
type TaskModule struct {
	Handler *handlers.TaskHandler
	JWT     *helpers.JWTManager
}

func NewTaskModule(h *handlers.TaskHandler, jwt *helpers.JWTManager) *TaskModule {
	return &TaskModule{Handler: h, JWT: jwt}
}

func (m *TaskModule) Register(rg *gin.RouterGroup) {
	auth := middleware.TokenAuth(m.JWT, http.StatusUnauthorized, http.StatusForbidden)

	tasks := rg.Group("/tasks", auth)
	tasks.POST("/", m.Handler.Create)
	tasks.GET("/createdby/", m.Handler.ListCreatedBy)
	tasks.GET("/assignedto/", m.Handler.ListAssignedTo)
	tasks.PATCH("/:id", m.Handler.SetDone)
	tasks.DELETE("/:id", m.Handler.Delete)
}
