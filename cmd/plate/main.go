// Command plate is a terminal plate-reader worksheet: an 8x12 grid for raw
// viability measurements with category tagging, normalization, and reports.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/chengju279/viability-calculator/internal/app"
	"github.com/chengju279/viability-calculator/internal/config"
	"github.com/chengju279/viability-calculator/internal/domain"
	"github.com/chengju279/viability-calculator/internal/platform"
	"github.com/chengju279/viability-calculator/internal/report"
	"github.com/chengju279/viability-calculator/internal/tui"
)

// version stores a package-level helper value.
var version = "dev"

// program represents program data used by this package.
type program interface {
	Run() (tea.Model, error)
}

// programFactory stores a package-level helper value.
var programFactory = func(m tea.Model) program {
	return tea.NewProgram(m)
}

// rootFlags carries the persistent flag values shared by every command.
type rootFlags struct {
	configPath string
	appName    string
	devMode    bool
}

// main handles main.
func main() {
	if err := fang.Execute(context.Background(), newRootCmd()); err != nil {
		os.Exit(1)
	}
}

// newRootCmd builds the command tree.
func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	defaultDevMode := version == "dev"
	if envDev, ok := parseBoolEnv("PLATE_DEV_MODE"); ok {
		defaultDevMode = envDev
	}
	appName := strings.TrimSpace(os.Getenv("PLATE_APP_NAME"))
	if appName == "" {
		appName = "plate"
	}

	root := &cobra.Command{
		Use:     "plate",
		Short:   "interactive plate-reader viability worksheet",
		Version: version,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd.ErrOrStderr(), flags)
		},
	}
	root.PersistentFlags().StringVar(&flags.configPath, "config", "", "path to config TOML")
	root.PersistentFlags().StringVar(&flags.appName, "app", appName, "application name for config/data path resolution")
	root.PersistentFlags().BoolVar(&flags.devMode, "dev", defaultDevMode, "use dev mode paths (<app>-dev)")

	root.AddCommand(newReportCmd(flags))
	root.AddCommand(newChartCmd(flags))
	root.AddCommand(newPathsCmd(flags))
	return root
}

// resolveEnvironment loads paths and config for the current flag set.
func resolveEnvironment(flags *rootFlags) (platform.Paths, config.Config, string, error) {
	paths, err := platform.DefaultPathsWithOptions(platform.Options{
		AppName: flags.appName,
		DevMode: flags.devMode,
	})
	if err != nil {
		return platform.Paths{}, config.Config{}, "", err
	}

	configPath := flags.configPath
	if configPath == "" {
		if envPath := strings.TrimSpace(os.Getenv("PLATE_CONFIG")); envPath != "" {
			configPath = envPath
		} else {
			configPath = paths.ConfigPath
		}
	}

	cfg, err := config.Load(configPath, config.Default(paths.ReportsDir))
	if err != nil {
		return platform.Paths{}, config.Config{}, "", fmt.Errorf("load config %q: %w", configPath, err)
	}
	return paths, cfg, configPath, nil
}

// runTUI launches the interactive worksheet.
func runTUI(stderr io.Writer, flags *rootFlags) error {
	paths, cfg, configPath, err := resolveEnvironment(flags)
	if err != nil {
		return err
	}

	logger, err := newRuntimeLogger(stderr, flags.appName, flags.devMode, paths.LogDir, cfg.Logging, time.Now)
	if err != nil {
		return fmt.Errorf("configure runtime logger: %w", err)
	}
	// Keep TUI rendering clean: runtime logs stay in the dev-file sink while
	// the worksheet is active.
	logger.SetConsoleEnabled(false)
	defer func() {
		if closeErr := logger.Close(); closeErr != nil && logger.shouldLogToSink(logger.consoleSink) {
			_, _ = fmt.Fprintf(stderr, "warning: close runtime log sink: %v\n", closeErr)
		}
	}()

	logger.Info("startup configuration resolved", "app", flags.appName, "dev_mode", flags.devMode)
	logger.Debug("runtime paths resolved", "config_path", configPath, "data_dir", paths.DataDir, "reports_dir", cfg.Report.OutDir)
	if devPath := logger.DevLogPath(); devPath != "" {
		logger.Info("dev file logging enabled", "path", devPath)
	}

	m := tui.NewModel(
		tui.WithDataDir(paths.DataDir),
		tui.WithReportsDir(cfg.Report.OutDir),
		tui.WithChartSize(cfg.Report.ChartWidth, cfg.Report.ChartHeight),
		tui.WithHelpBar(cfg.UI.ShowHelpBar),
		tui.WithStatsLine(cfg.UI.ShowStatsLine),
	)
	logger.Info("starting tui program loop")
	if _, err := programFactory(m).Run(); err != nil {
		logger.Error("tui program terminated with error", "err", err)
		return fmt.Errorf("run tui program: %w", err)
	}
	logger.Info("command flow complete", "command", "tui")
	return nil
}

// newReportCmd renders a saved plate as a text report.
func newReportCmd(flags *rootFlags) *cobra.Command {
	var inPath, outPath string
	cmd := &cobra.Command{
		Use:   "report",
		Short: "render a saved plate as averages, normalized wells, and groups",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := loadPlate(flags, inPath)
			if err != nil {
				return err
			}
			run := app.BuildReport(store, nil, time.Now())
			rendered := report.RenderTable(run)
			if outPath == "" || outPath == "-" {
				_, err := fmt.Fprint(cmd.OutOrStdout(), rendered)
				return err
			}
			if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
				return fmt.Errorf("create report output dir: %w", err)
			}
			if err := os.WriteFile(outPath, []byte(rendered), 0o644); err != nil {
				return fmt.Errorf("write report file: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&inPath, "in", "", "saved plate file (defaults to the data dir snapshot)")
	cmd.Flags().StringVar(&outPath, "out", "-", "output file path ('-' for stdout)")
	return cmd
}

// newChartCmd renders a saved plate as a viability bar chart PNG.
func newChartCmd(flags *rootFlags) *cobra.Command {
	var inPath, outPath string
	var width, height int
	cmd := &cobra.Command{
		Use:   "chart",
		Short: "render normalized test-well viability as a PNG bar chart",
		RunE: func(_ *cobra.Command, _ []string) error {
			store, err := loadPlate(flags, inPath)
			if err != nil {
				return err
			}
			if outPath == "" {
				return fmt.Errorf("--out is required")
			}
			run := app.BuildReport(store, nil, time.Now())
			if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
				return fmt.Errorf("create chart output dir: %w", err)
			}
			f, err := os.Create(outPath)
			if err != nil {
				return fmt.Errorf("create chart file: %w", err)
			}
			defer f.Close()
			if err := report.RenderChart(run, report.ChartOptions{Width: width, Height: height}, f); err != nil {
				return err
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&inPath, "in", "", "saved plate file (defaults to the data dir snapshot)")
	cmd.Flags().StringVar(&outPath, "out", "viability.png", "output PNG path")
	cmd.Flags().IntVar(&width, "width", 0, "chart width in pixels (0 uses the default)")
	cmd.Flags().IntVar(&height, "height", 0, "chart height in pixels (0 uses the default)")
	return cmd
}

// newPathsCmd prints the resolved runtime paths.
func newPathsCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "paths",
		Short: "print resolved config and data locations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			paths, cfg, configPath, err := resolveEnvironment(flags)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "app: %s\n", flags.appName)
			_, _ = fmt.Fprintf(out, "dev_mode: %t\n", flags.devMode)
			_, _ = fmt.Fprintf(out, "config: %s\n", configPath)
			_, _ = fmt.Fprintf(out, "data_dir: %s\n", paths.DataDir)
			_, _ = fmt.Fprintf(out, "reports_dir: %s\n", cfg.Report.OutDir)
			_, _ = fmt.Fprintf(out, "log_dir: %s\n", paths.LogDir)
			return nil
		},
	}
}

// loadPlate reads a plate snapshot from the given path or the default
// data-dir location.
func loadPlate(flags *rootFlags, inPath string) (domain.Store, error) {
	if inPath == "" {
		paths, _, _, err := resolveEnvironment(flags)
		if err != nil {
			return nil, err
		}
		inPath = filepath.Join(paths.DataDir, "plate.tsv")
	}
	raw, err := os.ReadFile(inPath)
	if err != nil {
		return nil, fmt.Errorf("read plate file: %w", err)
	}
	store, err := app.DecodeSnapshot(string(raw))
	if err != nil {
		return nil, fmt.Errorf("decode plate file %q: %w", inPath, err)
	}
	return store, nil
}

// parseBoolEnv parses input into a normalized form.
func parseBoolEnv(name string) (bool, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return false, false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}
	return v, true
}
