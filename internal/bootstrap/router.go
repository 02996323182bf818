package bootstrap

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/launchpad-labs/project-starter/config"
	httpapi "github.com/launchpad-labs/project-starter/internal/api/http"
	"github.com/launchpad-labs/project-starter/internal/api/http/middleware"
	"github.com/launchpad-labs/project-starter/internal/projects"
	projectshttp "github.com/launchpad-labs/project-starter/internal/projects/http"
	"github.com/launchpad-labs/project-starter/internal/session"
	sessionhttp "github.com/launchpad-labs/project-starter/internal/session/http"
	"github.com/launchpad-labs/project-starter/internal/web"
)

type RouterDeps struct {
	ServiceName    string
	Version        string
	AllowedOrigins []string
	Cookie         sessionhttp.CookieConfig
	Firebase       config.FirebaseConfig
	DevAuth        bool

	Sessions *session.Manager
	Forms    *projects.Registry
	DB       *pgxpool.Pool
	Redis    *redis.Client
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestIDMiddleware())
	if len(dep.AllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     dep.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.HeaderRequestID},
			ExposeHeaders:    []string{middleware.HeaderRequestID},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.DB, dep.Redis)
	healthHandler.RegisterRoutes(r)

	web.Install(r)

	sessionHandler := sessionhttp.New(dep.Sessions, dep.Cookie)
	withSession := r.Group("", sessionHandler.Context())

	web.NewPages(dep.Forms, dep.Firebase, dep.DevAuth).Register(withSession)
	sessionHandler.Register(withSession.Group("/session"))

	api := withSession.Group("/api/v1")

	projectsGroup := api.Group("/projects", sessionhttp.RequireSession())
	projectshttp.New(dep.Forms).Register(projectsGroup)

	return r
}
