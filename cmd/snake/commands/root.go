package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/battlesnakeio/classic/config"
	"github.com/battlesnakeio/classic/highscore"
	"github.com/battlesnakeio/classic/version"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:     "snake",
	Short:   "snake is the classic game, in a terminal, a window or behind an http api",
	Version: version.Version,
	Run: func(c *cobra.Command, args []string) {
		playCmd.Run(c, args)
	},
}

var (
	storeURL = defaultStoreURL()
	apiAddr  = "http://localhost:3005"
)

func defaultStoreURL() string {
	if config.StoreURL != "" {
		return config.StoreURL
	}
	return "file://"
}

// Execute runs the root command
func Execute() {
	rootCmd.PersistentFlags().StringVar(&storeURL, "store", storeURL, "high score store: memory://, file://path, redis://, postgres://, sqlite://path")
	rootCmd.Flags().AddFlagSet(playCmd.Flags())

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(highscoreCmd)
	rootCmd.AddCommand(stateCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// openStore opens the configured store. A store that cannot be opened is
// replaced by an in memory one so the game can still be played.
func openStore(ctx context.Context) highscore.Store {
	s, err := highscore.Open(ctx, storeURL)
	if err != nil {
		log.WithError(err).
			WithField("store", storeURL).
			Warn("unable to open high score store, scores will not persist")
		s = highscore.NewInMemStore()
	}
	return highscore.Fallback(highscore.InstrumentStore(s))
}
