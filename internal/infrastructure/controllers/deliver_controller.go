package controllers

import (
	"context"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/grocer/internal/domain/commands"
	"github.com/rios0rios0/grocer/internal/domain/entities"
)

// DeliverController handles the "deliver" subcommand (one daemon run).
type DeliverController struct {
	command commands.Deliver
	log     logger.FieldLogger
}

// NewDeliverController creates a new DeliverController.
func NewDeliverController(command commands.Deliver, log logger.FieldLogger) *DeliverController {
	return &DeliverController{command: command, log: log}
}

// GetBind returns the Cobra command metadata for the deliver controller.
func (it *DeliverController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "deliver",
		Short: "Upload everything that changed since the last delivery",
		Long: `Update the checkout, diff it against the last delivered revision
and upload or delete the cookbooks, roles and data bag items that changed.

This is the command intended to be used in a cronjob. The delivered
revision is only recorded once every upload succeeded; without a
recorded revision everything is uploaded.`,
	}
}

// Execute runs a single delivery.
func (it *DeliverController) Execute(cmd *cobra.Command, _ []string) error {
	v, settings, err := commandSettings(cmd, it.log)
	if err != nil {
		return err
	}

	_, err = it.command.Execute(context.Background(), settings, commands.DeliverOptions{
		DryRun:     v.GetBool("dry-run"),
		ForceFull:  v.GetBool("full"),
		SkipUpdate: v.GetBool("no-update"),
	})
	return err
}

// AddFlags adds the deliver-specific flags to the given Cobra command.
func (it *DeliverController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("full", false, "Ignore the recorded revision and upload everything")
	cmd.Flags().Bool("no-update", false, "Deliver the checkout as it is, without updating it")
}
