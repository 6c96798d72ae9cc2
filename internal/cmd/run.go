package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/codexup/codexup/internal/installmethod"
	"github.com/codexup/codexup/internal/launch"
)

// runLaunch is the default behaviour: check for an update, apply it when
// possible, then hand over to the target CLI. Only a missing target CLI or
// a broken explicit configuration file aborts the launch.
func runLaunch(ctx context.Context, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if cfg.SkipUpdate {
		binaryPath, err := installmethod.ResolveBinaryPath(cfg.Command)
		if err != nil {
			return fmt.Errorf("%w - install it first, then run this wrapper again", err)
		}
		return launchBinary(binaryPath, cfg.Command, args)
	}

	u, err := newUpdater(cfg)
	if err != nil {
		// a bad source configuration should not strand the user
		fmt.Fprintf(os.Stderr, "warning: %s\n", err)
		binaryPath, lookupErr := installmethod.ResolveBinaryPath(cfg.Command)
		if lookupErr != nil {
			return fmt.Errorf("%w - install it first, then run this wrapper again", lookupErr)
		}
		return launchBinary(binaryPath, cfg.Command, args)
	}

	binaryPath, _, err := u.CheckAndUpdate(ctx)
	if err != nil {
		return err
	}
	return launchBinary(binaryPath, cfg.Command, args)
}

func launchBinary(binaryPath, command string, args []string) error {
	code, err := launch.Run(binaryPath, command, args)
	if err != nil {
		return err
	}
	os.Exit(code)
	return nil
}
