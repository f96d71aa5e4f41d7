package routes

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"case-management-system/internal/casework/domain/archive"
	"case-management-system/internal/casework/domain/cases"
	"case-management-system/internal/casework/domain/disposition"
	"case-management-system/internal/casework/domain/knowledge"
	"case-management-system/internal/casework/domain/todo"
	"case-management-system/internal/iam/application/audit"
	"case-management-system/internal/iam/application/auth"
	"case-management-system/internal/iam/application/session"
	"case-management-system/internal/iam/domain/role"
	"case-management-system/internal/iam/domain/team"
	"case-management-system/internal/iam/domain/user"
	"case-management-system/internal/iam/middleware"
	"case-management-system/internal/infra/database/postgres"
	"case-management-system/internal/pkg/metrics"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "case-management-system/docs"
)

// Router é qualquer controller capaz de registrar as próprias rotas.
type Router interface {
	Routes(routes gin.IRouter)
}

// SetupRouter falha no boot (panic) se algum controller não foi inicializado.
func SetupRouter() *gin.Engine {
	setMode(viper.GetString("app.env"))

	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.RequestMetadata(),
		metrics.Middleware(),
		middleware.AccessLog(),
	)

	r.GET("/health", Health(postgres.Ping))
	r.GET("/metrics", gin.WrapH(metrics.Handler()))
	// Acessível em /doc/index.html
	r.GET("/doc/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	SetupApiRoutes(r, controllers()...)
	return r
}

func setMode(env string) {
	switch env {
	case "prod":
		gin.SetMode(gin.ReleaseMode)
	case "dev":
		gin.SetMode(gin.DebugMode)
	default:
		slog.Warn("app.env inválido ou vazio; usando modo dev",
			slog.String("component", "SERVER"), slog.String("env", env))
		gin.SetMode(gin.DebugMode)
	}
}

func controllers() []Router {
	uses := []func() (Router, error){
		func() (Router, error) { return auth.Use() },
		func() (Router, error) { return session.Use() },
		func() (Router, error) { return user.Use() },
		func() (Router, error) { return role.Use() },
		func() (Router, error) { return team.Use() },
		func() (Router, error) { return audit.Use() },
		func() (Router, error) { return cases.Use() },
		func() (Router, error) { return todo.Use() },
		func() (Router, error) { return disposition.Use() },
		func() (Router, error) { return archive.Use() },
		func() (Router, error) { return knowledge.Use() },
	}

	out := make([]Router, 0, len(uses))
	for _, use := range uses {
		ctrl, err := use()
		if err != nil {
			panic(fmt.Errorf("controller não inicializado: %w", err))
		}
		out = append(out, ctrl)
	}
	return out
}

func SetupApiRoutes(r *gin.Engine, routers ...Router) {
	api := r.Group("/api")
	for _, router := range routers {
		router.Routes(api)
	}
}

type healthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

// Health responde 503 quando o ping no banco falha.
func Health(ping func(ctx context.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, healthResponse{Status: "degraded", Database: "down"})
			return
		}
		c.JSON(http.StatusOK, healthResponse{Status: "ok", Database: "up"})
	}
}
