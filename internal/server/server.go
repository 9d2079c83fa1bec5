package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"

	campaigndomain "github.com/reachloop/reachloop/internal/campaign/domain"
	"github.com/reachloop/reachloop/internal/config"
	"github.com/reachloop/reachloop/internal/identity"
	"github.com/reachloop/reachloop/internal/observability"
	obsmiddleware "github.com/reachloop/reachloop/internal/observability/logger"
	obsmetrics "github.com/reachloop/reachloop/internal/observability/metrics"
	obstracing "github.com/reachloop/reachloop/internal/observability/tracing"
	"github.com/reachloop/reachloop/internal/ratelimit"
	reportdomain "github.com/reachloop/reachloop/internal/report/domain"
	"github.com/reachloop/reachloop/internal/usage/metering"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	fx.Provide(NewServer),
	fx.Invoke(func(*Server) {}),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "method not allowed"})
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	return NewEngine(obsCfg, httpMetrics)
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal("http server failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine        *gin.Engine
	log           *zap.Logger
	verifier      identity.Verifier
	campaignSvc   campaigndomain.Service
	reportSvc     reportdomain.Service
	worker        *metering.Worker
	reportLimiter *ratelimit.ReportLimiter
}

type ServerParams struct {
	fx.In

	Gin           *gin.Engine
	Log           *zap.Logger
	Verifier      identity.Verifier
	CampaignSvc   campaigndomain.Service
	ReportSvc     reportdomain.Service
	Worker        *metering.Worker
	ReportLimiter *ratelimit.ReportLimiter `optional:"true"`
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:        p.Gin,
		log:           p.Log.Named("http.server"),
		verifier:      p.Verifier,
		campaignSvc:   p.CampaignSvc,
		reportSvc:     p.ReportSvc,
		worker:        p.Worker,
		reportLimiter: p.ReportLimiter,
	}

	svc.registerAPIRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	v1 := s.engine.Group("/v1")

	v1.POST("/metering/run", s.RunMeteringPass)

	authed := v1.Group("")
	authed.Use(s.AuthRequired())

	authed.POST("/campaigns", s.CreateCampaign)
	authed.GET("/campaigns", s.ListCampaigns)
	authed.GET("/campaigns/:campaign_id", s.GetCampaign)
	authed.GET("/organizations/:org_id/campaigns/:campaign_id/report", s.CampaignReport)
}
