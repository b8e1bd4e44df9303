package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/boombafm/boombafm/internal/app"
	beepengine "github.com/boombafm/boombafm/internal/audio/beep"
	"github.com/boombafm/boombafm/internal/audio/mock"
	"github.com/boombafm/boombafm/internal/domain"
	"github.com/boombafm/boombafm/internal/eventbus"
	"github.com/boombafm/boombafm/internal/logger"
	"github.com/boombafm/boombafm/internal/persist"
	"github.com/boombafm/boombafm/internal/ports"
	"github.com/boombafm/boombafm/internal/tagreader"
	"github.com/boombafm/boombafm/internal/tui"
)

func main() {
	defaults := app.DefaultConfig()

	var (
		musicDir  string
		stateFile string
		logLevel  string
		logFormat string
		noAudio   bool
		noWatch   bool
	)

	root := &cobra.Command{
		Use:   "boombafm",
		Short: "BoombaFM is a keyboard-driven music player for your local library",
		Long: "BoombaFM scans a music directory, keeps playlists and favorites in a\n" +
			"single state file, and plays your library with shuffle, repeat, and a\n" +
			"play queue from the terminal.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logCfg := logger.DefaultConfig()
			if logLevel != "" {
				logCfg.Level = logger.ParseLevel(logLevel)
			}
			logCfg.Format = logFormat
			log := logger.NewLogger(logCfg)

			cfg := defaults
			cfg.MusicDir = musicDir
			cfg.StateFile = stateFile
			cfg.WatchDir = !noWatch

			var engine ports.PlaybackEngine
			if noAudio {
				engine = mock.NewEngine()
			} else {
				engine = beepengine.NewEngine(log)
			}

			bus := eventbus.NewSyncBus(log)
			repo := persist.NewFileStore(log, cfg.StateFile)
			application := app.New(log, cfg, bus, engine, repo, tagreader.New())

			errs := make(chan error, 1)
			go func() {
				errs <- application.Run()
			}()

			uiErr := tui.New(log, application).Run()
			application.Dispatch(domain.Quit{})
			if err := <-errs; err != nil {
				return err
			}
			return uiErr
		},
	}

	root.Flags().StringVar(&musicDir, "music-dir", defaults.MusicDir, "music library directory")
	root.Flags().StringVar(&stateFile, "state-file", defaults.StateFile, "playlists and settings file")
	root.Flags().StringVar(&logLevel, "log-level", "", "log level (DEBUG, INFO, WARN, ERROR), overrides BOOMBA_LOG_LEVEL")
	root.Flags().StringVar(&logFormat, "log-format", "text", "log format (text or json)")
	root.Flags().BoolVar(&noAudio, "no-audio", false, "run with a silent playback engine")
	root.Flags().BoolVar(&noWatch, "no-watch", false, "disable the music directory watcher")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
