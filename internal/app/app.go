package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/hainweb/merchant-console/config"
	"github.com/hainweb/merchant-console/internal/controller"
	circuitbreaker "github.com/hainweb/merchant-console/internal/infrastructure/circuit-breaker"
	"github.com/hainweb/merchant-console/internal/infrastructure/message-queue/kafka"
	"github.com/hainweb/merchant-console/internal/infrastructure/tracing"
	localmiddleware "github.com/hainweb/merchant-console/internal/middleware"
	"github.com/hainweb/merchant-console/internal/repository"
	"github.com/hainweb/merchant-console/internal/service"
	"github.com/hainweb/merchant-console/pkg/httpclient"
	"github.com/hainweb/merchant-console/pkg/response"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	kafkago "github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel/sdk/trace"
)

const serviceName = "merchant-console"

type App struct {
	Config *config.Config
	Server *echo.Echo

	traceProvider *trace.TracerProvider
	scheduler     gocron.Scheduler
	kafkaWriter   *kafkago.Writer
	metrics       *echo.Echo
	products      service.ProductService
}

// Setup builds the server and its dependencies and starts the background
// jobs. It does not listen.
func (app *App) Setup() error {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if app.Config.Environment == "development" {
		logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}
	log.Logger = logger

	e := echo.New()
	e.HideBanner = true

	traceProvider, err := tracing.InitTracing(app.Config.TracingConfig.CollectorHost, serviceName)
	if err != nil {
		return err
	}
	app.traceProvider = traceProvider

	tracer := traceProvider.Tracer(serviceName)

	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// span creation and naming
			ctx, span := tracer.Start(c.Request().Context(), fmt.Sprintf("[%s] %s", c.Request().Method, c.Path()))
			defer span.End()

			req := c.Request()
			c.SetRequest(req.WithContext(ctx))

			return next(c)
		}
	})

	// Used empty string so that metrics are not prefixed with the service name making it easier to aggregate across services
	e.Use(echoprometheus.NewMiddleware(""))
	e.Use(localmiddleware.Logger)

	g := e.Group("/api/v1")

	g.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogRemoteIP: true,
		LogMethod:   true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.Debug().
				Str("method", v.Method).
				Str("URI", v.URI).
				Int("status", v.Status).
				Int64("latency", v.Latency.Microseconds()).
				Str("remote IP", v.RemoteIP).
				Msg("Request")

			return nil
		},
	}))

	client := httpclient.CreateHttpClient(app.Config.MerchantAPIConfig.Timeout)
	cb := circuitbreaker.CreateCircuitBreaker[repository.RemoteResponse]("merchant-api")

	merchantAPIRepo := repository.CreateMerchantAPIRepository(client, cb, app.Config.MerchantAPIConfig)
	sessionRepo := repository.CreateSessionRepository(app.Config.SessionConfig.TTL)
	draftRepo := repository.CreateDraftRepository(app.Config.SessionConfig.DraftTTL)

	var publisher service.EventPublisher
	app.kafkaWriter = kafka.CreateKafkaWriter(app.Config)
	if app.kafkaWriter != nil {
		publisher = app.kafkaWriter
	} else {
		log.Warn().Msg("no broker configured, product events are disabled")
	}

	authSvc := service.CreateAuthService(merchantAPIRepo, sessionRepo, draftRepo, app.Config)
	productSvc := service.CreateProductService(merchantAPIRepo, draftRepo, publisher)
	app.products = productSvc
	dashboardSvc := service.CreateDashboardService(merchantAPIRepo)
	housekeepingSvc := service.CreateHousekeepingService(sessionRepo, draftRepo)

	isLoggedIn := localmiddleware.Authenticated(app.Config.JWTSecret, sessionRepo)

	controller.CreateAuthController(g, authSvc, isLoggedIn)
	controller.CreateProductController(g, productSvc, isLoggedIn, app.Config.UploadConfig)
	controller.CreateDashboardController(g, dashboardSvc, isLoggedIn)

	g.GET("/ping", func(c echo.Context) error {
		return response.WriteSuccessResponse(c, "Hello, World!", nil)
	})

	s, err := gocron.NewScheduler()
	if err != nil {
		return err
	}

	_, err = s.NewJob(
		gocron.DurationJob(
			app.Config.SessionConfig.SweepInterval,
		),
		gocron.NewTask(
			housekeepingSvc.SweepExpired,
		),
	)
	if err != nil {
		return err
	}
	s.Start()
	app.scheduler = s

	app.metrics = echo.New()
	app.metrics.HideBanner = true
	app.metrics.GET("/metrics", echoprometheus.NewHandler())

	app.Server = e
	return nil
}

func (app *App) Start() {
	if app.Server == nil {
		if err := app.Setup(); err != nil {
			log.Fatal().Err(err).Msg("Failed to set up the server")
		}
	}

	go func() {
		if err := app.metrics.Start(fmt.Sprintf(":%s", app.Config.MetricsPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start metrics server")
		}
	}()

	if err := app.Server.Start(fmt.Sprintf(":%s", app.Config.ServicePort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("Failed to start server")
	}
}

func (app *App) StopServer() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var errs []error
	if app.Server != nil {
		errs = append(errs, app.Server.Shutdown(ctx))
	}
	if app.metrics != nil {
		errs = append(errs, app.metrics.Shutdown(ctx))
	}
	if app.scheduler != nil {
		errs = append(errs, app.scheduler.Shutdown())
	}
	if app.products != nil {
		app.products.WaitForEvents()
	}
	if app.kafkaWriter != nil {
		errs = append(errs, app.kafkaWriter.Close())
	}
	if app.traceProvider != nil {
		errs = append(errs, app.traceProvider.Shutdown(ctx))
	}

	return errors.Join(errs...)
}
