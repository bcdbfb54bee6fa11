package cli

import (
	"context"
	"fmt"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jdmarket/colibri/internal/ai"
	"github.com/jdmarket/colibri/internal/config"
	"github.com/jdmarket/colibri/internal/engine"
	"github.com/jdmarket/colibri/internal/gateway"
	"github.com/jdmarket/colibri/internal/logging"
	"github.com/jdmarket/colibri/internal/session"
	"github.com/jdmarket/colibri/internal/sideband"
	"github.com/jdmarket/colibri/internal/store"
	"github.com/jdmarket/colibri/internal/whatsapp"
)

func newServeCmd() *cobra.Command {
	var (
		port int
		bind string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the webhook server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(paths.Config)
			if err != nil {
				return err
			}

			if port != 0 {
				cfg.Server.Port = port
			}
			if bind != "" {
				cfg.Server.Bind = bind
			}
			if logLevel != "" {
				cfg.Logging.Level = logLevel
			}

			issues := config.Validate(&cfg)
			if len(issues) > 0 {
				for _, issue := range issues {
					log.Error().Str("path", issue.Path).Msg(issue.Message)
				}
				return fmt.Errorf("config validation failed with %d issue(s)", len(issues))
			}

			log = logging.NewWithStyle(cfg.Logging.ConsoleStyle, cfg.Logging.Level)

			if err := paths.EnsureDirs(); err != nil {
				return fmt.Errorf("creating data directories: %w", err)
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			messenger := whatsapp.NewClient(whatsapp.ClientConfig{
				APIToken:      cfg.WhatsApp.APIToken,
				PhoneNumberID: cfg.WhatsApp.PhoneNumberID,
				APIVersion:    cfg.WhatsApp.APIVersion,
			}, log)

			var asker ai.Asker
			if cfg.AI.Provider == "openrouter" {
				asker = ai.NewOpenRouterClient(cfg.AI.APIKey, cfg.AI.Model, cfg.AI.BaseURL)
				log.Info().Str("provider", asker.Name()).Msg("AI assistant available")
			} else {
				log.Warn().Msg("no AI provider configured — product questions get the fallback reply")
			}

			var forwarders sideband.Multi
			chatwoot := sideband.NewChatwootForwarder(sideband.ChatwootConfig{
				BaseURL: cfg.Sideband.Chatwoot.BaseURL,
				Token:   cfg.Sideband.Chatwoot.Token,
				InboxID: cfg.Sideband.Chatwoot.InboxID,
			}, log)
			if chatwoot.Enabled() {
				forwarders = append(forwarders, chatwoot)
			}

			var recorder *sideband.Recorder
			if cfg.Sideband.Transcript.Enabled {
				dbPath := cfg.Sideband.Transcript.Path
				if dbPath == "" {
					dbPath = filepath.Join(paths.Data, "colibri.db")
				}
				db, err := store.Open(dbPath, log)
				if err != nil {
					return fmt.Errorf("opening transcript database: %w", err)
				}
				defer db.Close()
				recorder = sideband.NewRecorder(db, log)
				forwarders = append(forwarders, recorder)
				log.Info().Str("path", dbPath).Msg("recording conversation transcript")
			}

			var forward sideband.Forwarder
			if len(forwarders) > 0 {
				forward = forwarders
			}

			sessions := session.NewMemoryStore(
				time.Duration(cfg.Session.IdleMinutes)*time.Minute, log)

			eng := engine.New(sessions, messenger, asker, forward, log)

			opts := []gateway.ServerOption{gateway.WithSessions(sessions)}
			if recorder != nil {
				opts = append(opts, gateway.WithRecorder(recorder))
			}

			srv := gateway.New(cfg, eng, messenger, log, opts...)
			return srv.Start(ctx)
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "override server port")
	cmd.Flags().StringVar(&bind, "bind", "", "override bind mode (loopback, lan, custom)")

	return cmd
}
