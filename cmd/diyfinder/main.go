package main

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"diyfinder/cmd/diyfinder/app"
	"diyfinder/internal/api"
	"diyfinder/internal/config"
	"diyfinder/internal/logging"
	"diyfinder/internal/session"
	"diyfinder/internal/watch"
)

const version = "1.0.0"

var (
	// Global flags
	configPath string
	serverURL  string
	watchDir   string
	verbose    bool

	cfg config.Config
)

// rootCmd launches the TUI.
var rootCmd = &cobra.Command{
	Use:   "diyfinder",
	Short: "DIY Visual Finder - terminal client for your garage inventory",
	Long: `DIY Visual Finder is a terminal client for an AI-assisted home
inventory: photograph an item and the backend classifies and stores it,
search your inventory by reference photo, or ask questions in plain
language.

Run without arguments to start the interactive interface.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path := configPath
		if path == "" {
			path = config.DefaultPath()
		}

		var err error
		cfg, err = config.Load(path)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if serverURL != "" {
			cfg.ServerURL = serverURL
		}
		if watchDir != "" {
			cfg.WatchDir = watchDir
		}
		level := cfg.Log.Level
		if verbose {
			level = "debug"
		}
		// The TUI owns the terminal, so logs always go to a file.
		if err := logging.Init(cfg.LogFile(), level); err != nil {
			return fmt.Errorf("initializing logging: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.Sync()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI()
	},
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check that the backend is reachable",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
		defer cancel()

		client := api.NewClient(cfg.ServerURL)
		resp, err := client.Health(ctx)
		if err != nil {
			return fmt.Errorf("backend at %s: %w", cfg.ServerURL, err)
		}
		fmt.Printf("%s: %s\n", cfg.ServerURL, resp.Message)
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the client version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("diyfinder " + version)
	},
}

func runTUI() error {
	client := api.NewClient(cfg.ServerURL)
	sessions := &session.Store{}

	program := tea.NewProgram(
		app.New(cfg, client, sessions),
		tea.WithAltScreen(),
	)

	// The drop folder is optional; when configured, new image files are
	// ingested in the background and reported into the running program.
	var watcher *watch.Watcher
	if cfg.WatchDir != "" {
		var err error
		watcher, err = watch.New(cfg.WatchDir, app.NewIngester(client, sessions), func(r watch.Result) {
			program.Send(app.ItemIngestedMsg{Path: r.Path, Err: r.Err})
		})
		if err != nil {
			return fmt.Errorf("creating drop-folder watcher: %w", err)
		}
		if err := watcher.Start(context.Background()); err != nil {
			return fmt.Errorf("watching %s: %w", cfg.WatchDir, err)
		}
		defer watcher.Stop()
	}

	_, err := program.Run()
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default "+config.DefaultPath()+")")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "backend base URL (overrides config)")
	rootCmd.PersistentFlags().StringVar(&watchDir, "watch", "", "drop folder to auto-ingest images from")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
