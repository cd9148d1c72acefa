package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Rorical/MedAssist/internal/app"
	"github.com/Rorical/MedAssist/internal/eventbus"
	"github.com/Rorical/MedAssist/internal/logging"
	"github.com/Rorical/MedAssist/internal/utils"
	"github.com/Rorical/MedAssist/internal/validate"
	"github.com/Rorical/MedAssist/ui/components"
)

var askStyle string

var askCmd = &cobra.Command{
	Use:   "ask [question...]",
	Short: "Ask a single question and print the answer",
	Long: `Validate the question, send it to the completion endpoint of the active
profile, and print the answer followed by the disclaimer. Exits with status 1
when the question is invalid or the request fails.`,
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := logging.NewStderrLogger(slog.LevelWarn)
		return runAsk(cmd.Context(), cmd.OutOrStdout(), strings.Join(args, " "), appOptions, askStyle, logger)
	},
}

func runAsk(ctx context.Context, out io.Writer, question string, opts app.Options, style string, logger *slog.Logger) error {
	if result := validate.Question(question); !result.Valid() {
		return errors.New(result.Error(validate.FieldQuestion))
	}

	cfg, err := app.LoadConfig(opts)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if !cfg.IsValid() {
		logger.Warn("profile is missing an API key or endpoint", "profile", cfg.ActiveProfile)
	}

	renderer, err := utils.NewMarkdownRenderer(style, 80)
	if err != nil {
		return fmt.Errorf("create markdown renderer: %w", err)
	}

	// The service's event loop is not started; Ask runs on this goroutine.
	eb := eventbus.NewEventBus()
	defer eb.Close()
	service := app.NewService(cfg, opts, eb, logger)
	defer service.Stop()

	if ctx == nil {
		ctx = context.Background()
	}
	outcome, err := service.Ask(ctx, strings.TrimSpace(question))
	if err != nil {
		return err
	}
	if !outcome.OK() {
		return errors.New(outcome.Message)
	}

	fmt.Fprintln(out, renderer.Render(outcome.Text))
	fmt.Fprintln(out)
	fmt.Fprintln(out, components.ResponseDisclaimer)
	return nil
}

func init() {
	askCmd.Flags().StringVar(&askStyle, "style", utils.StyleAuto, "markdown style: auto, dark, light, notty")
	rootCmd.AddCommand(askCmd)
}
