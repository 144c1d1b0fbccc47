package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/studiowebux/ollaterm/internal/cli"
	"github.com/studiowebux/ollaterm/internal/config"
	"github.com/studiowebux/ollaterm/internal/executor"
	"github.com/studiowebux/ollaterm/internal/keybinds"
	"github.com/studiowebux/ollaterm/internal/logging"
	"github.com/studiowebux/ollaterm/internal/tui"
)

var (
	version = "0.1.0"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		// The backend's own error text was already printed
		if !errors.Is(err, cli.ErrExecutionFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		stop()
		os.Exit(1)
	}
}

// Global flags
var (
	flagBackend string
	flagOutput  string
)

// Command flags
var (
	flagHTML  string
	flagYes   bool
	flagForce bool
)

var rootCmd = &cobra.Command{
	Use:   "ollaterm",
	Short: "Terminal client for a remote code-execution backend",
	Long: `ollaterm sends code to a remote execution backend and shows its output,
session variables and execution history.

Run without arguments to start the interactive TUI, or use a subcommand
for a single operation.

Examples:
  ollaterm                             # Start interactive TUI
  ollaterm exec 'x = 40 + 2'           # Run code in the current session
  ollaterm run-file scripts/setup.py   # Run a file stored on the backend
  ollaterm vars -o json                # Print variables as JSON
  ollaterm history --html out.html     # Export history as HTML
  ollaterm --backend http://gpu:8000   # Use another backend`,
	Version:       version,
	Args:          cobra.NoArgs,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI()
	},
}

var execCmd = &cobra.Command{
	Use:   "exec <code>",
	Short: "Execute code in the backend session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRunner(func(r *cli.Runner) error {
			return r.Execute(cmd.Context(), args[0])
		})
	},
}

var runFileCmd = &cobra.Command{
	Use:   "run-file <path>",
	Short: "Execute a file stored on the backend",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRunner(func(r *cli.Runner) error {
			return r.ExecuteFile(cmd.Context(), args[0])
		})
	},
}

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show the session id and variables",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRunner(func(r *cli.Runner) error {
			return r.Info(cmd.Context())
		})
	},
}

var varsCmd = &cobra.Command{
	Use:     "vars",
	Aliases: []string{"variables"},
	Short:   "List session variables",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRunner(func(r *cli.Runner) error {
			return r.Variables(cmd.Context())
		})
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the execution history",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRunner(func(r *cli.Runner) error {
			return r.History(cmd.Context(), flagHTML)
		})
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset the backend session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRunner(func(r *cli.Runner) error {
			return r.Reset(cmd.Context(), flagYes)
		})
	},
}

var saveCmd = &cobra.Command{
	Use:   "save [name]",
	Short: "Save the session (the backend picks a name when omitted)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := ""
		if len(args) > 0 {
			name = args[0]
		}
		return withRunner(func(r *cli.Runner) error {
			return r.Save(cmd.Context(), name)
		})
	},
}

var loadCmd = &cobra.Command{
	Use:   "load <name>",
	Short: "Load a saved session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRunner(func(r *cli.Runner) error {
			return r.Load(cmd.Context(), args[0])
		})
	},
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check that the backend is reachable",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRunner(func(r *cli.Runner) error {
			return r.Health(cmd.Context())
		})
	},
}

var keybindsCmd = &cobra.Command{
	Use:   "keybinds",
	Short: "Manage key bindings",
}

var keybindsInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write an example keybinds.jsonc",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		if flagForce {
			if err := os.Remove(cfg.KeybindsFile); err != nil && !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("failed to remove %s: %w", cfg.KeybindsFile, err)
			}
		}
		if err := keybinds.CreateExampleConfig(cfg.KeybindsFile); err != nil {
			return err
		}
		fmt.Printf("Keybinds written to %s\n", cfg.KeybindsFile)
		return nil
	},
}

var keybindsCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate keybinds.jsonc",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		registry, err := keybinds.LoadOrDefault(cfg.KeybindsFile)
		if err != nil {
			return err
		}
		fmt.Printf("%s is valid\n\n", cfg.KeybindsFile)
		printBindings(os.Stdout, registry)
		return nil
	},
}

// printBindings writes the effective bindings, one per line, grouped by context
func printBindings(w io.Writer, registry *keybinds.Registry) {
	for _, ctx := range keybinds.Contexts {
		for _, b := range registry.ListBindings(ctx) {
			if b.Context != ctx {
				continue
			}
			fmt.Fprintf(w, "%-12s %-14s %s\n", b.Context, b.Key, b.Action)
		}
	}
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default config.yaml",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Initialize(); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}
		return writeDefaultConfig(config.ConfigFile, flagForce)
	},
}

// writeDefaultConfig saves the default configuration to path, keeping an
// existing file unless force is set
func writeDefaultConfig(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	if err := config.Default().Save(path); err != nil {
		return err
	}
	fmt.Printf("Config written to %s\n", path)
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagBackend, "backend", "", "Backend URL (overrides config and OLLATERM_BACKEND_URL)")
	rootCmd.PersistentFlags().StringVarP(&flagOutput, "output", "o", "text", "Output format (text/json/yaml)")

	historyCmd.Flags().StringVar(&flagHTML, "html", "", "Also write the history as an HTML transcript to this file")
	resetCmd.Flags().BoolVarP(&flagYes, "yes", "y", false, "Do not ask for confirmation")
	keybindsInitCmd.Flags().BoolVar(&flagForce, "force", false, "Overwrite an existing file")
	configInitCmd.Flags().BoolVar(&flagForce, "force", false, "Overwrite an existing file")

	keybindsCmd.AddCommand(keybindsInitCmd)
	keybindsCmd.AddCommand(keybindsCheckCmd)
	configCmd.AddCommand(configInitCmd)

	rootCmd.AddCommand(execCmd)
	rootCmd.AddCommand(runFileCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(varsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(saveCmd)
	rootCmd.AddCommand(loadCmd)
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(keybindsCmd)
	rootCmd.AddCommand(configCmd)
}

// loadConfig initializes the config directory and resolves the configuration
func loadConfig() (*config.Config, error) {
	if err := config.Initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize config: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	if flagBackend != "" {
		cfg.BackendURL = flagBackend
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

func newLogger(cfg *config.Config) *zap.Logger {
	return logging.NewOrNop(logging.FileConfig(cfg.LogLevel, cfg.LogFile))
}

func newClient(cfg *config.Config, logger *zap.Logger) *executor.Client {
	return executor.New(executor.Options{
		BaseURL:   cfg.BackendURL,
		Timeout:   cfg.RequestTimeout,
		UserAgent: "ollaterm/" + version,
		Logger:    logger,
	})
}

// withRunner builds a CLI runner for one subcommand
func withRunner(fn func(r *cli.Runner) error) error {
	format, err := cli.ParseFormat(flagOutput)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger := newLogger(cfg)
	defer logger.Sync()

	runner := &cli.Runner{
		Client:   newClient(cfg, logger),
		Out:      os.Stdout,
		Err:      os.Stderr,
		In:       os.Stdin,
		Format:   format,
		Logger:   logger,
		Language: cfg.Highlight.Language,
		Style:    cfg.Highlight.Style,
	}
	return fn(runner)
}

// runTUI starts the interactive TUI
func runTUI() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger := newLogger(cfg)
	defer logger.Sync()

	registry, err := keybinds.LoadOrDefault(cfg.KeybindsFile)
	if err != nil {
		return fmt.Errorf("invalid keybinds: %w", err)
	}

	logger.Info("starting", zap.String("backend", cfg.BackendURL), zap.String("version", version))

	return tui.Run(tui.Options{
		Config:   cfg,
		Backend:  newClient(cfg, logger),
		Keybinds: registry,
		Logger:   logger,
	})
}
