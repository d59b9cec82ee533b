package modules

import (
	"net/http"

	"github.com/gin-gonic/gin"

	handlers "github.com/taskloop/taskloop/internal/interface/http"
	"github.com/taskloop/taskloop/internal/interface/middleware"
	"github.com/taskloop/taskloop/pkg/helpers"
)

// UserModule wires the user directory routes.
// Public: POST /users/, POST /users/login
// Protected: GET /users/
type UserModule struct {
	Handler *handlers.UserHandler
	JWT     *helpers.JWTManager
}

func NewUserModule(h *handlers.UserHandler, jwt *helpers.JWTManager) *UserModule {
	return &UserModule{Handler: h, JWT: jwt}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	rg.POST("/users/", m.Handler.Register)
	rg.POST("/users/login", m.Handler.Login)

	// The listing keeps the original 400-for-missing-token behavior.
	auth := middleware.TokenAuth(m.JWT, http.StatusBadRequest, http.StatusUnauthorized)
	rg.GET("/users/", auth, m.Handler.List)
}
