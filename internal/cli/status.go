package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jdmarket/colibri/internal/config"
	"github.com/jdmarket/colibri/internal/version"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show Colibri status and configuration summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("Colibri %s (commit %s)\n\n", version.Version, version.Commit)

			fmt.Printf("Config:  %s\n", paths.Config)
			fmt.Printf("Data:    %s\n", paths.Data)
			fmt.Printf("Logs:    %s\n", paths.Logs)
			fmt.Println()

			cfg, err := config.Load(paths.Config)
			if err != nil {
				if os.IsNotExist(err) {
					fmt.Println("Config:  not found (using defaults)")
				} else {
					fmt.Printf("Config:  error loading: %v\n", err)
				}
				return nil
			}

			fmt.Printf("Server:  port=%d bind=%s\n", cfg.Server.Port, cfg.Server.Bind)

			if cfg.WhatsApp.APIToken != "" && cfg.WhatsApp.PhoneNumberID != "" {
				fmt.Printf("Number:  %s (Graph API %s)\n",
					cfg.WhatsApp.PhoneNumberID, cfg.WhatsApp.APIVersion)
			} else {
				fmt.Println("Number:  (not configured)")
			}

			if cfg.AI.Provider == "openrouter" && cfg.AI.APIKey != "" {
				model := cfg.AI.Model
				if model == "" {
					model = "(default)"
				}
				fmt.Printf("AI:      openrouter model=%s\n", model)
			} else {
				fmt.Println("AI:      (none — fallback replies only)")
			}

			fmt.Printf("Session: idle=%dm\n", cfg.Session.IdleMinutes)

			chatwoot := cfg.Sideband.Chatwoot
			if chatwoot.BaseURL != "" && chatwoot.Token != "" && chatwoot.InboxID != "" {
				fmt.Printf("Chatwoot: inbox=%s\n", chatwoot.InboxID)
			} else {
				fmt.Println("Chatwoot: (not configured)")
			}

			if cfg.Sideband.Transcript.Enabled {
				path := cfg.Sideband.Transcript.Path
				if path == "" {
					path = "(data dir)"
				}
				fmt.Printf("Transcript: %s\n", path)
			}

			issues := config.Validate(&cfg)
			if len(issues) > 0 {
				fmt.Printf("\nValidation issues (%d):\n", len(issues))
				for _, issue := range issues {
					fmt.Printf("  - %s: %s\n", issue.Path, issue.Message)
				}
			}

			return nil
		},
	}

	return cmd
}
