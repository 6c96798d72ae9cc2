package cmd

import (
	"log"
	"os"
	"runtime"

	"github.com/codexup/codexup/internal/apply"
	"github.com/codexup/codexup/internal/config"
	"github.com/codexup/codexup/internal/installmethod"
	"github.com/codexup/codexup/internal/logging"
	"github.com/codexup/codexup/internal/probe"
	"github.com/codexup/codexup/internal/release"
	"github.com/codexup/codexup/internal/source"
	"github.com/codexup/codexup/internal/updater"
)

func loadConfig() (config.Config, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return config.Config{}, err
	}
	if cfg.Verbose || verbose {
		logging.SetLogger(log.New(os.Stderr, "codexup: ", 0))
	}
	return cfg, nil
}

func newProbe(cfg config.Config) probe.Probe {
	return probe.Probe{
		Command: cfg.Command,
		Timeout: cfg.ProbeTimeout,
	}
}

func newResolver(cfg config.Config) (*release.Resolver, error) {
	src, err := source.New(cfg.Source, cfg.BaseURL)
	if err != nil {
		return nil, err
	}
	resolver := release.NewResolver(src, source.ParseSlug(cfg.Repository))
	resolver.Timeout = cfg.ResolveTimeout
	return resolver, nil
}

func newUpdater(cfg config.Config) (*updater.Updater, error) {
	resolver, err := newResolver(cfg)
	if err != nil {
		return nil, err
	}
	prb := newProbe(cfg)
	return &updater.Updater{
		Probe:    prb,
		Resolver: resolver,
		Detector: &installmethod.Detector{
			Command:    cfg.Command,
			BrewCask:   cfg.BrewCask,
			NpmPackage: cfg.NpmPackage,
		},
		Applier: &apply.Applier{
			Resolver:     resolver,
			Probe:        prb,
			Command:      cfg.Command,
			OS:           runtime.GOOS,
			Arch:         runtime.GOARCH,
			Stdout:       os.Stdout,
			Stderr:       os.Stderr,
			StallTimeout: cfg.StallTimeout,
		},
		Command:        cfg.Command,
		ResolveTimeout: cfg.ResolveTimeout,
		Stderr:         os.Stderr,
	}, nil
}
