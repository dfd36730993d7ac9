package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/pvn-digital/initiative-catalog/auth"
	"github.com/pvn-digital/initiative-catalog/config"
	"github.com/pvn-digital/initiative-catalog/database"
	"github.com/pvn-digital/initiative-catalog/errs"
	"github.com/pvn-digital/initiative-catalog/services"
)

const defaultWebhookURL = "https://n8n.oilgas.ai/webhook/api/catalog_upload"

type Server struct {
	*http.Server
	startupTime time.Time
}

// Services are the long-lived domain services behind the HTTP routes.
type Services struct {
	Catalog *services.CatalogService
	Admin   *services.AdminService
}

// NewServices wires the repositories of db into the catalog and admin
// services. The catalog snapshot is empty until the first Refresh.
func NewServices(ctx context.Context, c map[string]string, db database.Database) (Services, error) {
	uploader, err := newUploader(ctx, c)
	if err != nil {
		return Services{}, err
	}

	activityLogger := services.NewActivityLogger(db.LogRepo(), log.With().Str("component", "activityLogger").Logger())
	catalogService := services.NewCatalogService(
		db.InitiativeRepo(),
		db.ExternalDatabaseRepo(),
		uploader,
		activityLogger,
		log.With().Str("component", "catalogService").Logger(),
		services.WithUploadDelay(config.GetDuration(c, "UPLOAD_DELAY_MS", time.Millisecond, 500)),
	)
	adminService := services.NewAdminService(
		db.AdminRepo(),
		db.LogRepo(),
		config.GetString(c, "SUPER_ADMIN_EMAIL", services.DefaultSuperAdmin),
		config.GetInt(c, "LOG_FETCH_LIMIT", services.DefaultLogFetchSize),
		log.With().Str("component", "adminService").Logger(),
	)

	return Services{Catalog: catalogService, Admin: adminService}, nil
}

// newUploader picks the attachment backend named by UPLOAD_BACKEND.
func newUploader(ctx context.Context, c map[string]string) (services.Uploader, error) {
	switch backend := strings.ToLower(config.GetString(c, "UPLOAD_BACKEND", "webhook")); backend {
	case "webhook":
		client := &http.Client{Timeout: config.GetDuration(c, "UPLOAD_TIMEOUT_SECONDS", time.Second, 120)}
		return services.NewWebhookUploader(config.GetString(c, "UPLOAD_WEBHOOK_URL", defaultWebhookURL), client), nil

	case "s3":
		bucket := config.GetString(c, "S3_BUCKET", "")
		if bucket == "" {
			return nil, errs.NewEnvironmentVariableError("S3_BUCKET")
		}
		region := config.GetString(c, "S3_REGION", "ap-southeast-1")
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
		if err != nil {
			return nil, errs.NewConfigError("aws", err)
		}
		return services.NewS3Uploader(
			s3.NewFromConfig(awsCfg),
			bucket,
			region,
			config.GetString(c, "S3_KEY_PREFIX", "attachments"),
			config.GetString(c, "S3_PUBLIC_BASE_URL", ""),
		), nil

	default:
		return nil, errs.NewEnvironmentVariableError("UPLOAD_BACKEND")
	}
}

func NewServer(c map[string]string, svc Services) (Server, error) {
	port := config.GetString(c, "PORT", "8080")
	address := fmt.Sprintf("0.0.0.0:%s", port) // Bind to 0.0.0.0 for external access

	secret := config.GetString(c, "JWT_SECRET", "")
	if secret == "" {
		return Server{}, errs.NewEnvironmentVariableError("JWT_SECRET")
	}

	startupTime := time.Now()

	router := newRouter(svc,
		withConfig(c),
		withStartupTime(startupTime),
		withVerifier(newVerifier(c, secret)),
		withLogin(newLogin(c)),
	)

	server := &http.Server{
		Addr:         address,
		Handler:      router,
		ReadTimeout:  config.GetDuration(c, "READ_TIMEOUT_SECONDS", time.Second, 180),
		WriteTimeout: config.GetDuration(c, "WRITE_TIMEOUT_SECONDS", time.Second, 180),
		IdleTimeout:  config.GetDuration(c, "IDLE_TIMEOUT_SECONDS", time.Second, 180),
	}

	return Server{server, startupTime}, nil
}

func newVerifier(c map[string]string, secret string) *auth.Verifier {
	opts := []auth.VerifierOption{
		auth.WithLeeway(config.GetDuration(c, "JWT_LEEWAY_SECONDS", time.Second, 30)),
	}
	if audience := config.GetString(c, "JWT_AUDIENCE", "authenticated"); audience != "" {
		opts = append(opts, auth.WithAudience(audience))
	}
	return auth.NewVerifier(secret, opts...)
}

// newLogin returns nil when AUTH_URL is unset.
func newLogin(c map[string]string) *auth.Login {
	authURL := config.GetString(c, "AUTH_URL", "")
	if authURL == "" {
		return nil
	}
	return auth.NewLogin(
		authURL,
		config.GetString(c, "AUTH_CLIENT_ID", ""),
		config.GetString(c, "AUTH_REDIRECT_URL", ""),
		config.GetString(c, "AUTH_PROVIDER", auth.DefaultProvider),
	)
}

type router struct {
	config      map[string]string
	startupTime time.Time
	verifier    *auth.Verifier
	login       *auth.Login
}

func withConfig(c map[string]string) func(*router) {
	return func(r *router) {
		r.config = c
	}
}

func withStartupTime(startupTime time.Time) func(*router) {
	return func(r *router) {
		r.startupTime = startupTime
	}
}

func withVerifier(verifier *auth.Verifier) func(*router) {
	return func(r *router) {
		r.verifier = verifier
	}
}

func withLogin(login *auth.Login) func(*router) {
	return func(r *router) {
		r.login = login
	}
}

func newRouter(svc Services, opts ...func(*router)) *chi.Mux {
	var router router
	for _, opt := range opts {
		opt(&router)
	}

	chiRouter := chi.NewRouter()
	chiRouter.Use(LogInternalServerErrors)

	maxUploadBytes := int64(config.GetInt(router.config, "MAX_UPLOAD_MB", defaultMaxUploadBytes>>20)) << 20
	handlers := initializeHandlers(svc, router.login, maxUploadBytes, router.startupTime)

	authMiddleware := newAuthMiddleware(router.verifier, svc.Admin)

	// An unset origin list allows every origin
	acceptedOrigins := config.GetList(router.config, "ACCEPTED_ORIGINS")
	if len(acceptedOrigins) == 0 {
		acceptedOrigins = []string{"*"}
	}
	chiRouter.Use(CORSCheckMiddleware(acceptedOrigins))
	chiRouter.Use(corsMiddleware(acceptedOrigins))

	setupRoutes(chiRouter, handlers, authMiddleware)

	return chiRouter
}

func (s Server) Start(errChannel chan<- error) {
	log.Info().Msgf("Server started on: %s", s.Addr)
	errChannel <- s.ListenAndServe()
}

func (s Server) ShutdownGracefully(timeout time.Duration) {
	log.Info().Msg("Gracefully shutting down...")

	gracefullCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.Shutdown(gracefullCtx); err != nil {
		log.Error().Msgf("Error shutting down the server: %v", err)
	} else {
		log.Info().Msg("HttpServer gracefully shut down")
	}
}
