package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/llehouerou/reel/internal/app"
	"github.com/llehouerou/reel/internal/config"
	"github.com/llehouerou/reel/internal/errmsg"
	"github.com/llehouerou/reel/internal/logging"
	"github.com/llehouerou/reel/internal/mainloop"
	"github.com/llehouerou/reel/internal/mpris"
	"github.com/llehouerou/reel/internal/notify"
	"github.com/llehouerou/reel/internal/player"
	"github.com/llehouerou/reel/internal/stderr"
)

type flags struct {
	config   string
	logLevel string
}

func newRootCmd() *cobra.Command {
	var f flags
	cmd := &cobra.Command{
		Use:   "reel [locator]",
		Short: "Play a media file or URL in the terminal",
		Long: "reel plays a local file or an http(s) URL with transport controls.\n" +
			"Without a locator it plays the configured source.",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(_ *cobra.Command, args []string) error {
			return run(f, args)
		},
	}
	cmd.Flags().StringVarP(&f.config, "config", "c", "", "read configuration from this file only")
	cmd.Flags().StringVar(&f.logLevel, "log-level", "", "override the configured log level")
	return cmd
}

func run(f flags, args []string) error {
	cfg, err := config.Load(f.config)
	if err != nil {
		return fmt.Errorf("%s", errmsg.Format(errmsg.OpConfigLoad, err))
	}
	if len(args) == 1 {
		cfg.Source = args[0]
	}

	logFile, err := logging.Setup(cfg.Log, f.logLevel)
	if err != nil {
		return fmt.Errorf("%s", errmsg.Format(errmsg.OpLogSetup, err))
	}
	defer logFile.Close()
	log := logrus.StandardLogger()

	// Audio libraries write to stderr, which would corrupt the TUI.
	if err := stderr.Start(func(line string) {
		log.WithField("source", "stderr").Warn(line)
	}); err != nil {
		log.WithError(err).Warn("stderr capture unavailable")
	}
	defer stderr.Stop()

	backend, err := player.New()
	if err != nil {
		return fmt.Errorf("%s", errmsg.Format(errmsg.OpInitialize, err))
	}
	defer backend.Close()
	backend.SetLogger(log.WithField("component", "player"))

	loop := mainloop.New()
	defer loop.Close()

	var notifier notify.Notifier
	if cfg.NotifyErrors {
		if notifier, err = notify.New(); err != nil {
			log.WithError(err).Warn("desktop notifications unavailable")
			notifier = nil
		}
	}

	m := app.New(app.Options{
		Backend:  backend,
		Loop:     loop,
		Source:   cfg.Source,
		SeekStep: cfg.SeekStep,
		Notifier: notifier,
		Log:      log.WithField("component", "playback"),
	})

	if cfg.MPRISEnabled() {
		adapter, err := mpris.New(mpris.NewControl(m.Controller, loop), log.WithField("component", "mpris"))
		if err != nil {
			log.WithError(err).Warn("mpris unavailable")
		} else {
			defer adapter.Close()
		}
	}

	log.WithField("source", cfg.Source).Info("starting")
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		stderr.WriteOriginal(fmt.Sprintf("Error: %v\n", err))
		os.Exit(1)
	}
}
