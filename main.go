package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"github.com/decker502/cardgallery/pkg/app"
	"github.com/decker502/cardgallery/pkg/config"
	"github.com/decker502/cardgallery/pkg/embedded"
	"github.com/decker502/cardgallery/pkg/logging"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfg app.Config

	root := &cobra.Command{
		Use:          "cardgallery",
		Short:        "Browse a people dataset as an animated 3D card gallery",
		Long:         `cardgallery shows each record of a tab-separated dataset (id, name, department, position) as a card and animates between table, sphere, focus and docked layouts.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if cfg.Verbose {
				logging.Setup(os.Stderr, log.DebugLevel)
			} else {
				logging.Setup(os.Stderr, log.WarnLevel)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), cfg)
		},
	}

	flags := root.Flags()
	flags.BoolVarP(&cfg.Verbose, "verbose", "v", false, "enable verbose logging")
	flags.StringVarP(&cfg.DataPath, "data", "d", "", "dataset file to load at startup")
	flags.BoolVar(&cfg.Sample, "sample", false, "load the built-in sample dataset")
	flags.StringVarP(&cfg.ChoreographyPath, "choreography", "c", "", "transition config file (.yaml, .yml or .toml)")
	flags.Int64Var(&cfg.Seed, "seed", 0, "random seed for card placement (0 = time based)")
	flags.BoolVarP(&cfg.Fullscreen, "fullscreen", "f", false, "start in fullscreen")
	root.MarkFlagsMutuallyExclusive("data", "sample")

	return root
}

func run(ctx context.Context, cfg app.Config) error {
	embedded.Init(dataFS)

	gallery, err := app.NewApp(cfg)
	if err != nil {
		return fmt.Errorf("failed to start gallery: %w", err)
	}

	ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
	ebiten.SetWindowTitle("Card Gallery")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowClosingHandled(true)

	// Ctrl+C 时让主循环保存设置后退出
	stop := context.AfterFunc(ctx, gallery.RequestExit)
	defer stop()

	if err := ebiten.RunGame(gallery); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
