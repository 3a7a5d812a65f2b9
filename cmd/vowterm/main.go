package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"vowterm/cmd/vowterm/studio"
	"vowterm/internal/audio"
	"vowterm/internal/concierge"
	"vowterm/internal/config"
	"vowterm/internal/invitation"
	"vowterm/internal/logging"
)

const version = "0.1.0"

var (
	// Global flags
	verbose    bool
	configPath string
	themeFlag  string
	noAudio    bool

	// Logger for non-interactive commands
	logger *zap.Logger
)

// rootCmd launches the interactive studio.
var rootCmd = &cobra.Command{
	Use:   "vowterm",
	Short: "vowterm - wedding invitation studio for the terminal",
	Long: `vowterm builds a single-page wedding invitation in your terminal.

Fill in the couple, venue, schedule, and an AI-assisted love story, then
launch a themed guest preview with a sealed-envelope reveal, soundtrack,
RSVP, and the AURA concierge chat.

Run without arguments to start the interactive studio.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// The studio owns the terminal; only batch commands get a console logger.
		if !cmd.HasParent() {
			return nil
		}

		zcfg := zap.NewProductionConfig()
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStudio()
	},
}

// narrateCmd generates a love story without entering the TUI.
var narrateCmd = &cobra.Command{
	Use:   "narrate [story points...]",
	Short: "Generate the love-story narrative and print it",
	Long: `Generates the invitation narrative from free-form story points and
prints it to stdout. Couple names come from --partner1/--partner2.

Example:
  vowterm narrate "met at a hackathon" "eloped to Iceland"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runNarrate,
}

var (
	partner1 string
	partner2 string
)

// configCmd manages the config file.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage vowterm configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath
		if path == "" {
			path = config.DefaultPath()
		}
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists at %s", path)
		}
		if err := config.DefaultConfig().Save(path); err != nil {
			return err
		}
		logger.Info("config written", zap.String("path", path))
		fmt.Println(path)
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the vowterm version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("vowterm %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.vowterm/config.yaml)")
	rootCmd.Flags().StringVar(&themeFlag, "theme", "", "starting theme (cyberpunk, ethereal, minimalist)")
	rootCmd.Flags().BoolVar(&noAudio, "no-audio", false, "disable the soundtrack player")

	narrateCmd.Flags().StringVar(&partner1, "partner1", "Alex", "first partner name")
	narrateCmd.Flags().StringVar(&partner2, "partner2", "Jordan", "second partner name")

	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(narrateCmd, configCmd, versionCmd)
}

func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if themeFlag != "" {
		cfg.Theme = themeFlag
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newClient builds the concierge client, or nil when no key is configured.
// A nil client keeps the studio fully usable on canned fallback strings.
func newClient(ctx context.Context, cfg *config.Config) concierge.Client {
	if cfg.Gemini.APIKey == "" {
		logging.Boot("no GEMINI_API_KEY; AI features run on fallbacks")
		return nil
	}
	client, err := concierge.NewGeminiClient(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
	if err != nil {
		logging.BootError("gemini client: %v", err)
		return nil
	}
	return client
}

func newPlayer(cfg *config.Config) audio.Player {
	if noAudio || !cfg.Audio.Enabled {
		return &audio.Nop{}
	}
	player, err := audio.NewExecPlayer()
	if err != nil {
		logging.Boot("soundtrack disabled: %v", err)
		return &audio.Nop{}
	}
	return player
}

func runStudio() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	debug := cfg.Logging.DebugMode || verbose
	if err := logging.Initialize(config.StateDir(), debug, cfg.Logging.Level); err != nil {
		return err
	}
	defer logging.CloseAll()
	logging.Boot("vowterm %s starting", version)

	ctx := context.Background()
	inv := invitation.Default().WithTheme(invitation.Theme(cfg.Theme))

	return studio.Run(studio.Config{
		Invitation: inv,
		Client:     newClient(ctx, cfg),
		Player:     newPlayer(cfg),
		Volume:     cfg.Audio.Volume,
	})
}

func runNarrate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	client := newClient(ctx, cfg)
	points := strings.Join(args, "; ")

	logger.Debug("generating narrative",
		zap.String("partner1", partner1),
		zap.String("partner2", partner2),
		zap.String("points", points),
	)

	text := concierge.Narrative(ctx, client, partner1, partner2, points)
	fmt.Println(text)
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
