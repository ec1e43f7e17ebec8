package cmd

import (
	"errors"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	fiberSwagger "github.com/swaggo/fiber-swagger"

	"inventara/config"
	"inventara/controllers"
	"inventara/jobs"
	"inventara/logging"
	"inventara/middleware"
	"inventara/notifier"
	"inventara/repository"
	"inventara/routes"
	"inventara/services"
)

// upload foto dan file import xlsx
const bodyLimit = 20 * 1024 * 1024

type components struct {
	loans      *services.LoanService
	notifs     *services.NotificationService
	reconciler *jobs.Reconciler
}

func buildComponents(cfg *config.Config) components {
	var sender notifier.Sender = notifier.LogSender{}
	if cfg.PushWebhookURL != "" {
		sender = notifier.NewWebhookSender(cfg.PushWebhookURL, int(cfg.PushRatePerSecond))
	} else {
		logging.Warn().Msg("PUSH_WEBHOOK_URL kosong, push notification hanya dicatat ke log")
	}
	notifs := services.NewNotificationService(repository.NotificationStore{}, sender)
	loans := services.NewLoanService(
		repository.NewLoanStore(cfg.MongoTransactions),
		notifs,
		services.WithPendingTimeout(cfg.PendingTimeout),
	)

	var pinger jobs.Pinger
	if cfg.StatusPingURL != "" {
		pinger = jobs.NewStatusPinger(cfg.StatusPingURL, &http.Client{Timeout: 10 * time.Second})
	}

	return components{
		loans:      loans,
		notifs:     notifs,
		reconciler: jobs.NewReconciler(loans, pinger),
	}
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	return c.Status(code).JSON(fiber.Map{"message": "Request gagal", "error": err.Error()})
}

func newApp(cfg *config.Config, comp components) (*fiber.App, error) {
	authz, err := middleware.NewAuthorizer()
	if err != nil {
		return nil, err
	}

	app := fiber.New(fiber.Config{
		AppName:      "inventara",
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
		BodyLimit:    bodyLimit,
		ErrorHandler: errorHandler,
	})

	app.Use(recover.New(recover.Config{EnableStackTrace: !cfg.IsProduction()}))
	app.Use(requestid.New())
	app.Use(middleware.CorsMiddleware(cfg.CORSOrigins))
	app.Use(middleware.LoggerMiddleware())
	app.Use(middleware.MetricsMiddleware())

	app.Get("/swagger/*", fiberSwagger.WrapHandler)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	routes.SetupRoutes(app, routes.Handlers{
		JWTSecret: cfg.JWTSecret,
		Authz:     authz,
		LoginLimiter: limiter.New(limiter.Config{
			Max:        cfg.LoginRateLimit,
			Expiration: time.Minute,
			LimitReached: func(c *fiber.Ctx) error {
				return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
					"message": "Terlalu banyak percobaan login, coba lagi nanti",
				})
			},
		}),
		Users:      controllers.NewUserController(cfg.JWTSecret, cfg.JWTTTL),
		Aset:       controllers.NewAsetController(cfg.UploadDir),
		Detail:     controllers.NewDetailPeminjamanController(comp.loans, comp.reconciler),
		Peminjaman: controllers.NewPeminjamanController(comp.loans),
		Notifikasi: controllers.NewNotifikasiController(comp.notifs),
		Laporan:    controllers.NewLaporanController(),
	})

	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Endpoint tidak ditemukan"})
	})
	return app, nil
}
