package commands

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/battlesnakeio/classic/api"
	"github.com/battlesnakeio/classic/config"
	"github.com/battlesnakeio/classic/highscore"
	"github.com/battlesnakeio/classic/worker"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	apiListen  = ":3005"
	promEnable = true
	promListen = ":9000"
)

func init() {
	serveCmd.Flags().StringVarP(&apiListen, "listen", "l", apiListen, "api address to listen on")
	serveCmd.Flags().BoolVar(&promEnable, "prometheus", promEnable, "enable prometheus metrics")
	serveCmd.Flags().StringVar(&promListen, "prometheus-listen", promListen, "prometheus http endpoint")
}

var serveCmd = &cobra.Command{
	Use:    "serve",
	Short:  "runs a headless game behind the http api",
	PreRun: func(c *cobra.Command, args []string) { prometheus() },
	Run: func(c *cobra.Command, args []string) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		store := openStore(ctx)
		defer func() {
			if err := highscore.Close(store); err != nil {
				log.WithError(err).Error("unable to close store")
			}
		}()

		w := worker.New(ctx, config.Game(), store, config.FrameInterval)
		go func() {
			if err := w.Run(ctx); err != nil && err != context.Canceled {
				log.WithError(err).Error("worker failed")
			}
		}()

		server := api.New(apiListen, w, config.InputRate, config.InputBurstRate)
		go shutdownOnSignal(server, cancel)

		log.WithField("listen", apiListen).Info("snake api serving")
		if err := server.WaitForExit(); err != nil {
			log.WithError(err).
				WithField("listen", apiListen).
				Fatal("api server failed")
		}
	},
}

func shutdownOnSignal(server *api.Server, cancel context.CancelFunc) {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	s := <-sig
	log.WithField("signal", s.String()).Info("shutting down")

	ctx, done := context.WithTimeout(context.Background(), 5*time.Second)
	defer done()
	if err := server.Shutdown(ctx); err != nil {
		log.WithError(err).Warn("api did not shut down cleanly")
	}
	cancel()
}

func prometheus() {
	if !promEnable {
		log.Info("prometheus exporter not enabled")
		return
	}

	log.WithField("addr", promListen).Info("starting prometheus exporter")
	go func() {
		r := http.NewServeMux()
		r.Handle("/metrics", promhttp.Handler())
		if err := http.ListenAndServe(promListen, r); err != nil {
			log.WithError(err).Warn("prometheus failed to listen")
		}
	}()
}
