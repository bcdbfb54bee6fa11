package cli

import (
	"bufio"
	"context"
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jdmarket/colibri/internal/config"
	"github.com/jdmarket/colibri/internal/domain"
	"github.com/jdmarket/colibri/internal/whatsapp"
)

func newSendCmd() *cobra.Command {
	var to string

	cmd := &cobra.Command{
		Use:   "send [message]",
		Short: "Send a WhatsApp text message manually",
		Long:  "Sends a text message through the configured Cloud API number. With no message argument, reads lines from stdin until 'exit' or EOF.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if to == "" {
				return fmt.Errorf("--to is required")
			}

			cfg, err := config.Load(paths.Config)
			if err != nil {
				return err
			}
			if cfg.WhatsApp.APIToken == "" || cfg.WhatsApp.PhoneNumberID == "" {
				return fmt.Errorf("whatsapp credentials are not configured")
			}

			client := whatsapp.NewClient(whatsapp.ClientConfig{
				APIToken:      cfg.WhatsApp.APIToken,
				PhoneNumberID: cfg.WhatsApp.PhoneNumberID,
				APIVersion:    cfg.WhatsApp.APIVersion,
			}, log)

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if len(args) > 0 {
				text := strings.Join(args, " ")
				if err := client.Send(ctx, domain.TextRequest(to, text, "")); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "sent to %s\n", to)
				return nil
			}

			// Interactive mode: one message per line.
			fmt.Fprintf(cmd.OutOrStdout(), "Sending to %s. Type a message per line, 'exit' to quit.\n", to)
			scanner := bufio.NewScanner(cmd.InOrStdin())
			for scanner.Scan() {
				text := strings.TrimSpace(scanner.Text())
				if text == "" {
					continue
				}
				if strings.EqualFold(text, "exit") {
					break
				}
				if err := client.Send(ctx, domain.TextRequest(to, text, "")); err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "send failed: %v\n", err)
					continue
				}
				fmt.Fprintln(cmd.OutOrStdout(), "sent")
			}
			return scanner.Err()
		},
	}

	cmd.Flags().StringVar(&to, "to", "", "recipient phone number (international format, no +)")

	return cmd
}
