package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"firstseries/config"
	_ "firstseries/docs"
	"firstseries/internal/adapters/auth"
	"firstseries/internal/adapters/email"
	"firstseries/internal/adapters/storage"
	"firstseries/internal/adminview"
	deliveryhttp "firstseries/internal/delivery/http"
	"firstseries/internal/delivery/http/controllers"
	"firstseries/internal/domain"
	"firstseries/internal/repository/postgres"
	"firstseries/internal/services"
)

const shutdownTimeout = 15 * time.Second

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := config.NewLogger()

	db, err := postgres.Open(ctx, cfg.DBUrl)
	if err != nil {
		return err
	}
	defer db.Close()

	applied, err := postgres.Migrate(ctx, db)
	if err != nil {
		return err
	}
	if len(applied) > 0 {
		logger.Info("migrations applied", "versions", applied)
	}

	handler, err := buildHandler(ctx, cfg, db, logger)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "port", cfg.Port, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	logger.Info("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// buildHandler wires repositories, adapters, services and controllers into the router.
func buildHandler(ctx context.Context, cfg *config.Config, db *sql.DB, logger *slog.Logger) (http.Handler, error) {
	speakerRepo := postgres.NewSpeakerRepository(db)
	sponsorRepo := postgres.NewSponsorRepository(db)

	authSvc, err := newAuthService(cfg, db)
	if err != nil {
		return nil, err
	}

	var store domain.MediaStore
	if cfg.Media.Bucket == "" {
		logger.Warn("MEDIA_BUCKET is not set; media uploads are disabled")
		store = storage.Disabled()
	} else {
		store, err = storage.NewS3Store(ctx, storage.S3Config{
			Bucket:          cfg.Media.Bucket,
			Region:          cfg.Media.Region,
			Endpoint:        cfg.Media.EndpointURL,
			AccessKeyID:     cfg.Media.AccessKeyID,
			SecretAccessKey: cfg.Media.SecretAccessKey,
			PublicBaseURL:   cfg.Media.PublicBaseURL,
		})
		if err != nil {
			return nil, err
		}
	}

	renderer, err := adminview.NewRenderer()
	if err != nil {
		return nil, err
	}

	timeout := cfg.RequestTimeout
	return deliveryhttp.NewRouter(deliveryhttp.RouterDeps{
		Logger:         logger,
		Sessions:       authSvc,
		AllowedOrigins: cfg.AllowedOrigins,
		Auth:           controllers.NewAuthController(logger, authSvc),
		Catalog:        controllers.NewCatalogController(logger, services.NewCatalogService(speakerRepo, sponsorRepo, logger, timeout), renderer),
		Speakers:       controllers.NewSpeakerController(logger, services.NewSpeakerService(speakerRepo, timeout)),
		Sponsors:       controllers.NewSponsorController(logger, services.NewSponsorService(sponsorRepo, timeout)),
		Media:          controllers.NewMediaController(logger, services.NewMediaService(store, timeout), min(cfg.Media.MaxBytes, services.MaxMediaSize)),
		Showcase:       controllers.NewShowcaseController(logger, services.NewShowcaseService(speakerRepo, sponsorRepo, timeout)),
	}), nil
}

func newAuthService(cfg *config.Config, db *sql.DB) (domain.AuthService, error) {
	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Email.Provider,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
		SES: email.SESConfig{
			Region:             cfg.Email.AWSRegion,
			AccessKeyID:        cfg.Email.AWSAccessKeyID,
			SecretAccessKey:    cfg.Email.AWSSecretAccessKey,
			InsecureSkipVerify: cfg.Email.SESInsecureSkipVerify,
		},
	})
	if err != nil {
		return nil, err
	}
	templates, err := email.NewTemplateRenderer()
	if err != nil {
		return nil, err
	}

	tokens := auth.NewJWTTokens(cfg.JWTSecret, cfg.JWTIssuer)
	return services.NewAuthService(services.AuthDeps{
		Admins:       postgres.NewAdminRepository(db),
		Sessions:     postgres.NewAdminSessionRepository(db),
		LoginCodes:   postgres.NewLoginCodeRepository(db),
		Hasher:       auth.NewBcryptHasher(0),
		Issuer:       tokens,
		Verifier:     tokens,
		EmailService: services.NewEmailService(mailer, templates),
	}, cfg.SessionTTL, cfg.RequestTimeout), nil
}
