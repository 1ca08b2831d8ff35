package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/urbanallinone/radio-host-api/internal/services/announcer"
	"github.com/urbanallinone/radio-host-api/internal/services/azuracast"
	"github.com/urbanallinone/radio-host-api/internal/services/geo"
	"github.com/urbanallinone/radio-host-api/internal/services/voice"
	"github.com/urbanallinone/radio-host-api/pkg/config"
)

var (
	announceType string
	announceIP   string
	announceDry  bool
)

// announceCmd represents the announce command
var announceCmd = &cobra.Command{
	Use:   "announce",
	Short: "Produce a single announcement from the command line",
	Long: `Generate one announcement, render it to audio and push it into the
broadcast rotation without running the server.

Useful for testing voice settings and station delivery end to end.

Example:
  radio-host-api announce
  radio-host-api announce --type outro
  radio-host-api announce --type location --ip 82.132.186.1
  radio-host-api announce --type time --dry-run`,
	RunE: runAnnounce,
}

func init() {
	rootCmd.AddCommand(announceCmd)

	announceCmd.Flags().StringVar(&announceType, "type", "random", "announcement type (outro, intro, random, location, time)")
	announceCmd.Flags().StringVar(&announceIP, "ip", "", "listener IP for location announcements")
	announceCmd.Flags().BoolVar(&announceDry, "dry-run", false, "skip the station upload")
}

func runAnnounce(cmd *cobra.Command, args []string) error {
	cfg, err := config.GetConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	service := buildAnnouncerService(cfg, announceDry)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	result, err := service.Announce(ctx, announceType, announceIP)
	if err != nil {
		return fmt.Errorf("announcement failed: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Text:  %s\n", result.Text)
	fmt.Fprintf(out, "Audio: %s\n", result.LocalPath)
	if result.Upload != nil {
		if result.Upload.Uploaded {
			fmt.Fprintf(out, "Uploaded to station as %s (media %d)\n", result.Upload.Path, result.Upload.MediaID)
		} else {
			fmt.Fprintf(out, "Upload failed: %s\n", result.Upload.ErrorDetail)
		}
	}
	return nil
}

// buildAnnouncerService wires the one-shot pipeline from configuration.
// The server wires the same services through the API dependency layer.
func buildAnnouncerService(cfg *config.Config, dryRun bool) *announcer.Service {
	synth := voice.NewClient(voice.Config{
		APIKey:  cfg.Voice.APIKey,
		VoiceID: cfg.Voice.VoiceID,
		ModelID: cfg.Voice.ModelID,
		BaseURL: cfg.Voice.BaseURL,
		Timeout: cfg.Voice.Timeout,
		Defaults: voice.Settings{
			Stability:       cfg.Voice.Stability,
			SimilarityBoost: cfg.Voice.SimilarityBoost,
			Style:           cfg.Voice.Style,
			SpeakerBoost:    cfg.Voice.SpeakerBoost,
		},
	})

	locator := geo.NewResolver(geo.Config{
		BaseURL:           cfg.GeoIP.BaseURL,
		Timeout:           cfg.GeoIP.Timeout,
		RequestsPerMinute: cfg.GeoIP.RequestsPerMinute,
		Default: geo.Location{
			City:        cfg.GeoIP.DefaultCity,
			Region:      cfg.GeoIP.DefaultRegion,
			Country:     cfg.GeoIP.DefaultCountry,
			CountryCode: cfg.GeoIP.DefaultCode,
		},
	})

	templates := announcer.NewTemplateGenerator(nil)
	var generator announcer.Generator = templates
	if gemini, err := announcer.NewGeminiGenerator(context.Background(), cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Gemini.Temperature); err == nil {
		generator = announcer.NewFallbackGenerator(gemini, templates)
	}

	var broadcast announcer.Broadcaster
	if !dryRun {
		broadcast = azuracast.NewClient(azuracast.Config{
			BaseURL:      cfg.AzuraCast.BaseURL,
			APIKey:       cfg.AzuraCast.APIKey,
			StationID:    fmt.Sprintf("%d", cfg.AzuraCast.StationID),
			UploadFolder: cfg.AzuraCast.UploadFolder,
			PlaylistID:   int(cfg.AzuraCast.PlaylistID),
			Timeout:      cfg.AzuraCast.Timeout,
		})
	}

	return announcer.NewService(announcer.Config{
		StationName:          cfg.Station.Name,
		OutputDir:            cfg.Voice.OutputDir,
		ListenerAnnounceRate: cfg.Announcer.ListenerAnnounceRate,
		Timezone:             cfg.Station.Timezone,
	}, nil, generator, synth, broadcast, locator, nil, nil)
}
