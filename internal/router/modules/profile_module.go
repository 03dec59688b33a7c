package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/cityride/cityride-backend/internal/interface/http"
	"github.com/cityride/cityride-backend/internal/interface/middleware"
)

// ProfileModule wires the rider profile endpoints, all behind the auth gate.
// GET /api/profile, PUT /api/profile, POST /api/profile/avatar
type ProfileModule struct {
	Handler *handlers.ProfileHandler
	JWT     middleware.TokenVerifier
	RDB     *redis.Client
}

func NewProfileModule(h *handlers.ProfileHandler, jwt middleware.TokenVerifier, rdb *redis.Client) *ProfileModule {
	return &ProfileModule{Handler: h, JWT: jwt, RDB: rdb}
}

func (m *ProfileModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT))
	auth.Use(
		middleware.RateLimit(m.RDB, 300, time.Minute, middleware.KeyByIP(), nil),
		middleware.RateLimit(m.RDB, 120, time.Minute, middleware.KeyByUserID(), nil),
	)
	{
		auth.GET("/profile", m.Handler.Get)
		auth.PUT("/profile", m.Handler.Update)
		auth.POST("/profile/avatar", m.Handler.UploadAvatar)
	}
}
