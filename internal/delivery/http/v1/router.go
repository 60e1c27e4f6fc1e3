package v1

import (
	"net/http"

	"go-agency-backend/config"
	"go-agency-backend/internal/delivery/http/middleware"
	"go-agency-backend/internal/domain"
	"go-agency-backend/internal/usecase"
	"go-agency-backend/pkg/security"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	IntakeUC domain.IntakeUsecase
	HealthUC usecase.HealthUsecase
	Audit    *security.IntakeLogger
	Config   *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.Config.AllowedOrigins())) // CORS must be first!
	r.Use(middleware.RequestID())
	r.Use(gin.Logger())
	r.Use(middleware.Recovery(deps.Audit))
	r.Use(middleware.ErrorHandler())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, deps.HealthUC.Check(c.Request.Context()))
	})

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	public := r.Group("")
	public.Use(middleware.SecurityHeadersMiddleware())
	NewIntakeHandler(public, deps.IntakeUC)

	return r
}
