package httpapi

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/Lual007/Intermediate-API---Squad-06/docs"
	"github.com/Lual007/Intermediate-API---Squad-06/internal/config"
	"github.com/Lual007/Intermediate-API---Squad-06/internal/db"
	"github.com/Lual007/Intermediate-API---Squad-06/internal/http/handlers"
	"github.com/Lual007/Intermediate-API---Squad-06/internal/http/middleware"
	"github.com/Lual007/Intermediate-API---Squad-06/internal/service"
)

func Router(cfg config.Config, store *db.Store, svc *service.SentimentService, logger zerolog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if cfg.CORSAllowed == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = []string{cfg.CORSAllowed}
	}
	r.Use(cors.New(corsCfg))

	h := &handlers.Handler{
		Service:   svc,
		DB:        store,
		Validator: validator.New(),
		Logger:    logger,
	}

	r.GET("/healthz", h.Healthz)

	reads := r.Group("", middleware.RateLimit(cfg.ReadRatePerMin))
	{
		reads.GET("/sentimento/all", h.SentimentoAll)
		reads.GET("/sentimento/recorrente", h.SentimentoRecorrente)
		reads.GET("/sentimento/mais-frequente", h.SentimentoMaisFrequente)
		reads.GET("/sentimento/mais-negativo", h.SentimentoMaisNegativo)
		reads.GET("/sentimento/quantidade", h.SentimentoQuantidade)
		reads.GET("/sentimento/by-score", h.SentimentoByScore)
		reads.GET("/sentimento/by-data", h.SentimentoByData)
		reads.GET("/sentimento/tecnico/:id", h.SentimentoByTecnico)
		reads.GET("/atendimento", h.Atendimentos)
		reads.GET("/tecnico/:id", h.Tecnico)
		reads.GET("/cliente/:id", h.Cliente)
		reads.GET("/tecnicos-lista", h.TecnicosLista)
		reads.GET("/clientes-lista", h.ClientesLista)
	}

	writes := r.Group("", middleware.BearerAuth(cfg.JWTSecret), middleware.RateLimit(cfg.CreateRatePerMin))
	{
		writes.POST("/sentimento/create", h.SentimentoCreate)
		writes.DELETE("/sentimento/:id", h.SentimentoDelete)
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}
