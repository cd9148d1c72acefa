package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/Rorical/MedAssist/internal/app"
)

var appOptions app.Options

var rootCmd = &cobra.Command{
	Use:   "medassist",
	Short: "Ask medical questions from the terminal",
	Long: `MedAssist sends a medical question to an OpenAI-compatible completion endpoint
and shows the answer with a disclaimer. Always consult healthcare professionals
for medical advice.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApplication(appOptions)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution error: %v", err)
		os.Exit(1)
	}
}

// runApplication returns instead of exiting so Stop always runs.
func runApplication(opts app.Options) error {
	application, err := app.NewApplication(opts)
	if err != nil {
		return fmt.Errorf("failed to create application: %w", err)
	}
	defer application.Stop()

	if err := application.Start(); err != nil {
		return fmt.Errorf("application error: %w", err)
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&appOptions.Profile, "profile", "p", "", "profile to use for this run")
	rootCmd.PersistentFlags().BoolVar(&appOptions.Offline, "offline", false, "treat the network as unavailable")

	rootCmd.AddCommand(profileCmd)
}
