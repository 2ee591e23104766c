package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/transdom/site-edge/internal/api"
	"github.com/transdom/site-edge/internal/scheduler"
	"github.com/transdom/site-edge/internal/storage"
	"github.com/transdom/site-edge/internal/util"
)

func main() {
	cfgPath := flag.String("config", "", "config file")
	exportDir := flag.String("export", "", "write robots.txt and sitemap.xml to this directory and exit")
	printBuild := flag.Bool("print-build-config", false, "print the build configuration as YAML and exit")
	flag.Parse()

	cfg, err := api.LoadConfig(*cfgPath)
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	util.SetupLogging(cfg.Log.Level, nil)

	if *printBuild {
		enc := yaml.NewEncoder(os.Stdout)
		enc.SetIndent(2)
		if err := enc.Encode(cfg.Build); err != nil {
			log.Fatal().Err(err).Msg("print build config")
		}
		return
	}

	stor := storage.NewFS()
	srv := api.NewServer(cfg, stor)

	if *exportDir != "" {
		if err := scheduler.RunExport(context.Background(), stor, *exportDir, srv.Documents()...); err != nil {
			log.Fatal().Err(err).Msg("export")
		}
		return
	}

	sched := scheduler.New()
	if cfg.Export.Enabled {
		if err := sched.AddDaily("export", cfg.Export.Daily, func(ctx context.Context) error {
			return scheduler.RunExport(ctx, stor, cfg.Export.Dir, srv.Documents()...)
		}); err != nil {
			log.Fatal().Err(err).Msg("schedule export")
		}
	}
	sched.Start()
	defer sched.Stop()

	go func() {
		if err := srv.Start(); err != nil {
			log.Fatal().Err(err).Msg("http server")
		}
	}()

	sigC := make(chan os.Signal, 1)
	signal.Notify(sigC, os.Interrupt, syscall.SIGTERM)
	<-sigC

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Stop(ctx)
}
