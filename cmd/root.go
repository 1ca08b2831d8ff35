package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/urbanallinone/radio-host-api/pkg/config"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "radio-host-api",
	Short: "Radio Host API server",
	Long: `Radio Host API - the automated announcement layer for Urban All-in-One Radio.

The service watches the station's now-playing feed, decides when the AI
host should speak, writes the line, renders it to audio and pushes the
file into the broadcast rotation.

Features:
  • Announcement scheduling from the now-playing feed
  • Generated host lines with a template fallback
  • Text-to-speech rendering via ElevenLabs
  • Listener shoutouts with IP geolocation
  • Curated news feed for the station site`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// NewRootCmd creates a new root command (exported for testing)
func NewRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	// Configuration is loaded lazily, only for commands that need it
	cobra.OnInitialize(loadConfig)

	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
}

// loadConfig loads the configuration when a command needs it
func loadConfig() {
	// Version and help never touch config
	cmd, _, _ := rootCmd.Find(os.Args[1:])
	if cmd != nil && (cmd.Name() == "version" || cmd.Name() == "help") {
		return
	}

	if err := config.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing config: %v\n", err)
		os.Exit(1)
	}
}
