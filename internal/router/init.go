package router

import (
	"github.com/taskloop/taskloop/internal/application"
	"github.com/taskloop/taskloop/internal/container"
	pginfra "github.com/taskloop/taskloop/internal/infrastructure/postgres"
	handlers "github.com/taskloop/taskloop/internal/interface/http"
	"github.com/taskloop/taskloop/internal/router/modules"
)

// InitModules builds the user and task modules from the container singletons
// and registers them with the router registry. Call once during startup.
func InitModules(r *Registry) {
	userRepo := pginfra.NewUserRepository(container.GetPGPool())
	taskRepo := pginfra.NewTaskRepository(container.GetPGPool())

	userSvc := application.NewUserService(
		userRepo,
		container.GetJWT(),
		container.GetRedis(),
		container.GetLogger(),
	)
	taskSvc := application.NewTaskService(
		taskRepo,
		userSvc,
		container.GetRabbitPub(),
		container.GetLogger(),
	)

	userHandler := handlers.NewUserHandler(userSvc, container.GetLogger())
	taskHandler := handlers.NewTaskHandler(taskSvc, container.GetLogger())

	r.Add(modules.NewUserModule(userHandler, container.GetJWT()))
	r.Add(modules.NewTaskModule(taskHandler, container.GetJWT()))
}
