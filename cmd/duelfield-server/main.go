package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/duelverse/duelfield/internal/card"
	"github.com/duelverse/duelfield/internal/config"
	"github.com/duelverse/duelfield/internal/server"
)

func main() {
	cfgPath := flag.String("config", "", "path to config YAML file")
	flag.Parse()

	cfg := config.Default()
	if *cfgPath != "" {
		loaded, err := config.Load(*cfgPath)
		if err != nil {
			logrus.WithError(err).Fatal("loading config")
		}
		cfg = loaded
	}

	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)

	lib, err := card.LoadLibrary(cfg.Cards.Library)
	if err != nil {
		logrus.WithError(err).Fatal("loading card library")
	}
	logrus.WithField("cards", lib.Len()).Info("card library loaded")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.ListenAndServe(ctx, cfg.Server.Addr(), server.NewServer(lib)); err != nil {
		logrus.WithError(err).Fatal("relay server failed")
	}
}
