package controllers

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/grocer/internal/domain/commands"
	"github.com/rios0rios0/grocer/internal/domain/entities"
	"github.com/rios0rios0/grocer/internal/infrastructure/repositories/watcher"
)

// WatchController handles the "watch" subcommand: a long-running delivery
// loop woken up by checkout changes or by the polling interval.
type WatchController struct {
	command commands.Deliver
	log     logger.FieldLogger
}

// NewWatchController creates a new WatchController.
func NewWatchController(command commands.Deliver, log logger.FieldLogger) *WatchController {
	return &WatchController{command: command, log: log}
}

// GetBind returns the Cobra command metadata for the watch controller.
func (it *WatchController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "watch",
		Short: "Deliver continuously",
		Long: `Run a delivery at start-up, then again every watch.interval and
whenever the VCS metadata of the checkout changes (for example when
a hook fetches new commits). Stops on SIGINT or SIGTERM.`,
	}
}

// Execute runs the delivery loop until interrupted.
func (it *WatchController) Execute(cmd *cobra.Command, _ []string) error {
	v, settings, err := commandSettings(cmd, it.log)
	if err != nil {
		return err
	}
	opts := commands.DeliverOptions{DryRun: v.GetBool("dry-run")}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	w, err := watcher.NewRepositoryWatcher(metadataDirs(settings), it.log)
	if err != nil {
		return err
	}
	w.Start()
	defer w.Stop()

	interval := settings.WatchInterval()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	it.log.Infof("Watching %s, polling every %s", settings.Repository.Path, interval)

	for {
		// The delivery rewrites the metadata; ignore what it causes.
		w.Mute()
		err = it.deliver(ctx, settings, opts)
		w.Unmute()
		if err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			it.log.Info("Stopping watch")
			return nil
		case <-ticker.C:
			it.log.Debug("Polling interval elapsed")
		case <-w.Changes:
			it.log.Info("Checkout changed, delivering")
		}
	}
}

// deliver runs one delivery. Only parse failures stop the loop; anything
// else is logged and retried on the next wake-up.
func (it *WatchController) deliver(ctx context.Context, settings *entities.Settings, opts commands.DeliverOptions) error {
	_, err := it.command.Execute(ctx, settings, opts)
	if err == nil {
		return nil
	}

	var parseErr *entities.ParseError
	switch {
	case errors.As(err, &parseErr):
		return err
	case errors.Is(err, commands.ErrAlreadyRunning):
		it.log.Warn("Another delivery is running, skipping this one")
	default:
		it.log.Errorf("Delivery failed: %v", err)
	}
	return nil
}

func metadataDirs(settings *entities.Settings) []string {
	if settings.Repository.Type == entities.VCSSvn {
		return []string{filepath.Join(settings.Repository.Path, ".svn")}
	}
	gitDir := filepath.Join(settings.Repository.Path, ".git")
	return []string{gitDir, filepath.Join(gitDir, "refs", "heads")}
}
