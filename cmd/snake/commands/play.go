package commands

import (
	"context"
	"io/ioutil"
	"os"
	"time"

	"github.com/battlesnakeio/classic/config"
	"github.com/battlesnakeio/classic/highscore"
	"github.com/battlesnakeio/classic/rules"
	"github.com/battlesnakeio/classic/sound"
	"github.com/battlesnakeio/classic/surface"
	"github.com/battlesnakeio/classic/surface/raylib"
	"github.com/battlesnakeio/classic/surface/tcell"
	"github.com/battlesnakeio/classic/surface/termbox"
	"github.com/battlesnakeio/classic/worker"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	backendName  = "termbox"
	soundEnabled = false
	logFile      = ""
)

func init() {
	playCmd.Flags().StringVarP(&backendName, "backend", "b", backendName, "where to play: termbox, tcell or raylib")
	playCmd.Flags().BoolVar(&soundEnabled, "sound", soundEnabled, "play sound effects")
	playCmd.Flags().StringVar(&logFile, "log-file", logFile, "write logs to this file while playing")
}

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "play a game",
	Run: func(c *cobra.Command, args []string) {
		if err := play(); err != nil {
			log.WithError(err).Fatal("game failed")
		}
	},
}

func play() error {
	closeLog, err := redirectLog(backendName, logFile)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := openStore(ctx)
	defer highscore.Close(store)

	var opts []rules.Option
	if soundEnabled {
		p := sound.NewPlayer()
		if err := p.Initialize(); err != nil {
			log.WithError(err).Warn("no audio device, sound disabled")
		} else {
			defer p.Close()
			opts = append(opts, rules.WithListener(p.OnEvent))
		}
	}

	cfg := config.Game()
	backend, err := newBackend(backendName, cfg)
	if err != nil {
		return err
	}
	defer backend.Close()

	w := worker.New(ctx, cfg, store, config.FrameInterval, opts...)
	go w.Run(ctx)

	return loop(ctx, w, backend, config.FrameInterval)
}

func newBackend(name string, cfg rules.Config) (surface.Backend, error) {
	switch name {
	case "termbox":
		return termbox.New()
	case "tcell":
		return tcell.New()
	case "raylib":
		return raylib.New(cfg.Width, cfg.Height), nil
	}
	return nil, errors.Errorf("unknown backend %q", name)
}

// redirectLog keeps log lines off terminal backends, which own the screen.
func redirectLog(backend, path string) (func(), error) {
	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, errors.Wrap(err, "unable to open log file")
		}
		log.SetOutput(f)
		return func() { f.Close() }, nil
	}
	if backend != "raylib" {
		log.SetOutput(ioutil.Discard)
	}
	return func() {}, nil
}

type game interface {
	Submit(ctx context.Context, token string) (bool, error)
	Snapshot() rules.Snapshot
}

// loop renders a frame every interval and forwards input until the player
// quits. It runs on the calling goroutine, which windowed backends require.
func loop(ctx context.Context, g game, b surface.Backend, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case token, ok := <-b.Events():
			if !ok || token == surface.TokenQuit {
				return nil
			}
			if _, err := g.Submit(ctx, token); err != nil {
				return err
			}
		case <-ticker.C:
			snap := g.Snapshot()
			b.SetStatus(surface.StatusLines(snap))
			if err := rules.RenderSnapshot(snap, b); err != nil {
				return err
			}
		}
	}
}
