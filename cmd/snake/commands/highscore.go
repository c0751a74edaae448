package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/battlesnakeio/classic/highscore"
	"github.com/battlesnakeio/classic/rules"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var resetHighScore bool

func init() {
	highscoreCmd.Flags().BoolVar(&resetHighScore, "reset", false, "set the stored high score back to 0")
}

var highscoreCmd = &cobra.Command{
	Use:   "highscore",
	Short: "prints the stored high score",
	Run: func(*cobra.Command, []string) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		store, err := highscore.Open(ctx, storeURL)
		if err != nil {
			log.WithError(err).WithField("store", storeURL).Fatal("unable to open high score store")
		}
		defer highscore.Close(store)

		if resetHighScore {
			if err := store.Set(ctx, rules.HighScoreKey, 0); err != nil {
				log.WithError(err).Fatal("unable to reset high score")
			}
		}

		v, _, err := store.Get(ctx, rules.HighScoreKey)
		if err != nil {
			log.WithError(err).Fatal("unable to read high score")
		}
		fmt.Println(v)
	},
}
