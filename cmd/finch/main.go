package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	apppkg "github.com/kaji-lab/finch/internal/app"
	"github.com/kaji-lab/finch/internal/config"
)

var version = "dev"

var (
	flagConfig        string
	flagGraphics      string
	flagPreviewersDir string
	flagShowHidden    bool
)

var rootCmd = &cobra.Command{
	Use:     "finch",
	Short:   "Terminal file manager with asynchronous previews",
	Version: version,
	RunE: func(cmd *cobra.Command, args []string) error {
		// UTF-8 fallback so non-ASCII names render on limited terminals.
		tcell.SetEncodingFallback(tcell.EncodingFallbackUTF8)

		closeLog := setupLogging()
		defer closeLog()

		cfgPath := flagConfig
		if cfgPath == "" {
			if p, err := config.DefaultPath(); err == nil {
				cfgPath = p
			}
		}

		cfg, err := config.Load(cfgPath)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("graphics") {
			cfg.Graphics = flagGraphics
		}
		if cmd.Flags().Changed("previewers-dir") {
			cfg.PreviewersDir = flagPreviewersDir
		}
		if cmd.Flags().Changed("show-hidden") {
			cfg.ShowHidden = flagShowHidden
		}
		cfg = cfg.Finish()

		app, err := apppkg.NewApplication(cfg, cfgPath)
		if err != nil {
			return fmt.Errorf("initializing application: %w", err)
		}
		defer func() {
			_ = app.Close()
		}()

		app.Run()

		// Write the final directory for shell integration; the PID keeps
		// concurrent instances apart.
		if path := app.GetCurrentPath(); path != "" {
			resultFile := filepath.Join(os.TempDir(), fmt.Sprintf("finch_result_%d.txt", os.Getpid()))
			if err := os.WriteFile(resultFile, []byte(path), 0600); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: could not write result file: %v\n", err)
			}
		}
		return nil
	},
}

// setupLogging sends slog output to a file; the terminal belongs to tcell.
func setupLogging() func() {
	dir, err := os.UserCacheDir()
	if err != nil {
		return func() {}
	}
	logDir := filepath.Join(dir, "finch")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return func() {}
	}

	f, err := os.OpenFile(filepath.Join(logDir, "finch.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return func() {}
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelInfo})))
	return func() { _ = f.Close() }
}

func init() {
	rootCmd.Flags().StringVarP(&flagConfig, "config", "c", "", "config file path")
	rootCmd.Flags().StringVarP(&flagGraphics, "graphics", "g", config.GraphicsUnicode, "graphics mode (unicode or a protocol name)")
	rootCmd.Flags().StringVar(&flagPreviewersDir, "previewers-dir", "", "directory holding external previewer scripts")
	rootCmd.Flags().BoolVar(&flagShowHidden, "show-hidden", false, "show hidden files")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
