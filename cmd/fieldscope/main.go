package main

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"fieldscope/cmd/fieldscope/dashboard"
	"fieldscope/cmd/fieldscope/ui"
	"fieldscope/internal/api"
	"fieldscope/internal/config"
	"fieldscope/internal/logging"
	"fieldscope/internal/session"
)

var (
	// Global flags
	apiURL    string
	themeName string
	statsDays int
	verbose   bool

	// Logger for non-interactive subcommands
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "fieldscope",
	Short: "fieldscope - terminal dashboard for crop monitoring",
	Long: `fieldscope is a terminal client for a crop-monitoring service.

It manages your account, registers fields with polygon boundaries, uploads
crop images for stress analysis, and shows aggregate health statistics.

Run without arguments to start the interactive dashboard.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip logger init for the interactive dashboard (it has its own UI)
		if cmd.Use == "fieldscope" && cmd.CalledAs() == "fieldscope" {
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
		logging.CloseAll()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDashboard()
	},
}

// app bundles the wired collaborators every command needs.
type app struct {
	cfg    config.Config
	store  session.Store
	client *api.Client
}

// newApp loads the config, applies flag overrides, sets up the diagnostic
// logger, and wires the API client to the persistent session store.
func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		// Unreadable config is not fatal; defaults still work.
		fmt.Fprintf(os.Stderr, "warning: using default config: %v\n", err)
	}

	if apiURL != "" {
		cfg.APIBaseURL = apiURL
	}
	if statsDays > 0 {
		cfg.StatsDays = statsDays
	}
	if themeName != "" {
		cfg.Theme = themeName
	}
	if verbose {
		cfg.Logging.DebugMode = true
	}

	if home, herr := os.UserHomeDir(); herr == nil {
		_ = logging.Initialize(filepath.Join(home, ".fieldscope"), logging.Settings{
			DebugMode:  cfg.Logging.DebugMode,
			Level:      cfg.Logging.Level,
			Categories: cfg.Logging.Categories,
		})
	}
	logging.Boot("api base url: %s", cfg.APIBaseURL)

	store, err := session.NewFileStore()
	if err != nil {
		return nil, fmt.Errorf("failed to open session store: %w", err)
	}

	client := api.NewClient(cfg.APIBaseURL,
		api.WithTokenSource(session.Source{Store: store}),
		api.WithTimeout(cfg.Timeout()),
	)

	return &app{cfg: cfg, store: store, client: client}, nil
}

func runDashboard() error {
	a, err := newApp()
	if err != nil {
		return err
	}

	m := dashboard.New(dashboard.Config{
		Client:    a.client,
		Store:     a.store,
		Styles:    ui.NewStyles(ui.ThemeByName(a.cfg.Theme)),
		StatsDays: a.cfg.StatsDays,
	})

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("dashboard error: %w", err)
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Override the service base URL")
	rootCmd.PersistentFlags().StringVar(&themeName, "theme", "", "Color theme: light or dark")
	rootCmd.PersistentFlags().IntVar(&statsDays, "days", 0, "Statistics window in days")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(fieldsCmd)
	rootCmd.AddCommand(uploadCmd)
	rootCmd.AddCommand(statsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
