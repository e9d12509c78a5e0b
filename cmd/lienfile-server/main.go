package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/medlienpros/lienfile/internal/config"
	"github.com/medlienpros/lienfile/internal/domain/intake"
	"github.com/medlienpros/lienfile/internal/domain/payments"
	"github.com/medlienpros/lienfile/internal/domain/pricing"
	"github.com/medlienpros/lienfile/internal/domain/submission"
	"github.com/medlienpros/lienfile/internal/platform/dispatch"
	"github.com/medlienpros/lienfile/internal/platform/middleware"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "lienfile-server",
		Short: "Medical lien bulk filing API server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(feesCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the filing API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func feesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fees",
		Short: "Print the effective fee schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			fees := pricing.ScheduleFromConfig(cfg)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "filing fee:               %s\n", fees.Filing)
			fmt.Fprintf(out, "release fee:              %s\n", fees.Release)
			fmt.Fprintf(out, "rush fee:                 %s\n", fees.Rush)
			fmt.Fprintf(out, "certified handling:       %s per piece\n", fees.CertifiedHandling)
			fmt.Fprintf(out, "certified w/ RR handling: %s per piece\n", fees.CertifiedRRHandling)
			fmt.Fprintf(out, "default recipients:       %d\n", cfg.DefaultRecipientCount)
			return nil
		},
	}
}

func runServer() error {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid config")
	}

	engine := pricing.NewEngine(pricing.ScheduleFromConfig(cfg))
	sessionRepo := intake.NewMemorySessionRepository()

	var (
		submitter submission.Submitter
		sender    payments.Sender
	)
	if cfg.SubmissionURL != "" && cfg.PaymentURL != "" {
		httpDispatcher := dispatch.NewHTTPDispatcher(cfg.SubmissionURL, cfg.PaymentURL, logger,
			dispatch.WithHTTPClient(&http.Client{
				Timeout: time.Duration(cfg.DispatchTimeoutSeconds) * time.Second,
			}))
		submitter = httpDispatcher
		sender = httpDispatcher
		logger.Info().
			Str("submission_url", cfg.SubmissionURL).
			Str("payment_url", cfg.PaymentURL).
			Msg("dispatching to downstream endpoints")
	} else {
		logDispatcher := dispatch.NewLogDispatcher(logger)
		submitter = logDispatcher
		sender = logDispatcher
		logger.Info().Msg("no downstream endpoints configured, recording hand-offs locally")
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(middleware.RequestTimeout(time.Duration(cfg.DispatchTimeoutSeconds+5) * time.Second))
	e.Use(middleware.BodyLimit("1M"))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete},
		AllowHeaders: []string{"Content-Type", "X-Request-ID"},
	}))

	apiV1 := e.Group("/api/v1")

	intakeHandler := intake.NewHandler(sessionRepo, engine, cfg.DefaultRecipientCount)
	intakeHandler.RegisterRoutes(apiV1)

	submissionSvc := submission.NewService(engine, submitter)
	submissionHandler := submission.NewHandler(submissionSvc, sessionRepo, engine, cfg.DefaultRecipientCount)
	submissionHandler.RegisterRoutes(apiV1)

	paymentsHandler := payments.NewHandler(payments.NewService(sender))
	paymentsHandler.RegisterRoutes(apiV1)

	apiV1.GET("/fees", feesHandler(engine, cfg.DefaultRecipientCount))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"version": "0.1.0",
		})
	})

	// Graceful shutdown
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("server shutdown failed")
	}
	logger.Info().Msg("server stopped")
	return nil
}

// feesHandler publishes the fee schedule so a front end can render pricing
// without hardcoding amounts.
func feesHandler(engine *pricing.Engine, defaultRecipients int) echo.HandlerFunc {
	fees := engine.Fees()
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]any{
			"filing_fee_cents":                 fees.Filing,
			"release_fee_cents":                fees.Release,
			"rush_fee_cents":                   fees.Rush,
			"certified_handling_cents":         fees.CertifiedHandling,
			"certified_rr_handling_cents":      fees.CertifiedRRHandling,
			"default_recipient_count":          defaultRecipients,
			"filing_fee_display":               fees.Filing.String(),
			"release_fee_display":              fees.Release.String(),
			"rush_fee_display":                 fees.Rush.String(),
			"certified_handling_display":       fees.CertifiedHandling.String(),
			"certified_rr_handling_display":    fees.CertifiedRRHandling.String(),
			"standard_mail_included_in_filing": true,
		})
	}
}
