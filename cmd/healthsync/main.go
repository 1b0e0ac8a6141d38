package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/MKhiriev/wear-health-sync/internal/client"
	"github.com/MKhiriev/wear-health-sync/internal/config"
	"github.com/MKhiriev/wear-health-sync/internal/logger"
	"github.com/MKhiriev/wear-health-sync/internal/service"
	"github.com/MKhiriev/wear-health-sync/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "token" {
		if err := issueToken(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "token: %v\n", err)
			os.Exit(1)
		}
		return
	}

	printBuildInfo()

	cfg, err := config.GetStructuredConfig()
	if err != nil {
		logger.NewLogger("healthsync").Fatal().Err(err).Msg("error getting configs")
	}

	log := logger.NewFileLogger("healthsync", cfg.App.LogFile)
	if err = logger.SetLevel(cfg.App.LogLevel); err != nil {
		log.Warn().Err(err).Str("level", cfg.App.LogLevel).Msg("unknown log level, keeping the current one")
	}

	log.Debug().Any("config", cfg.Redacted()).Msg("received configs")

	build := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	app, err := client.NewApp(context.Background(), cfg, build, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init app error")
	}

	if err = app.Run(); err != nil {
		log.Fatal().Err(err).Msg("app run error")
	}
}

// issueToken prints a control API bearer token signed with the configured
// APP_TOKEN_SIGN_KEY.
//
//	healthsync token -subject phone-shell -ttl 720h
func issueToken(args []string) error {
	fs := flag.NewFlagSet("token", flag.ContinueOnError)
	subject := fs.String("subject", "host", "token subject")
	ttl := fs.Duration("ttl", 24*time.Hour, "token lifetime")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.LoadStructuredConfig(fs.Args())
	if err != nil {
		return err
	}
	if cfg.App.TokenSignKey == "" {
		return fmt.Errorf("APP_TOKEN_SIGN_KEY is not set")
	}

	token, err := service.NewAuthService(cfg.App, logger.Nop()).CreateToken(context.Background(), *subject, *ttl)
	if err != nil {
		return err
	}

	fmt.Println(token.String())
	return nil
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
