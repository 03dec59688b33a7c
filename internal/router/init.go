package router

import (
	"github.com/cityride/cityride-backend/internal/application"
	"github.com/cityride/cityride-backend/internal/container"
	pginfra "github.com/cityride/cityride-backend/internal/infrastructure/postgres"
	handlers "github.com/cityride/cityride-backend/internal/interface/http"
	"github.com/cityride/cityride-backend/internal/router/modules"
)

// InitModules builds the application modules from container singletons
// and registers them with the router registry. Called once at startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()

	userRepo := pginfra.NewUserRepository(container.GetPGPool())

	svc := application.NewService(userRepo, container.GetJWT(), logger)
	svc.GCS = container.GetGCS()
	svc.GCSBucket = cfg.GCSBucket
	svc.Pub = container.GetRabbitPub()
	svc.MailEnabled = cfg.MailSendEnabled
	svc.ES = container.GetES()
	svc.ESRiderIndex = cfg.ESRidersIndex

	authHandler := handlers.NewAuthHandler(svc, logger)
	profileHandler := handlers.NewProfileHandler(svc, logger)

	rdb := container.GetRedis()
	r.Add(modules.NewAuthModule(authHandler, container.GetJWT(), rdb))
	r.Add(modules.NewProfileModule(profileHandler, container.GetJWT(), rdb))
	r.Add(modules.NewDebugModule(rdb))
}
