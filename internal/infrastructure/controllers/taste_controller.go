package controllers

import (
	"context"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/grocer/internal/domain/commands"
	"github.com/rios0rios0/grocer/internal/domain/entities"
)

// TasteController handles the "taste" subcommand.
type TasteController struct {
	command commands.Taste
	log     logger.FieldLogger
}

// NewTasteController creates a new TasteController.
func NewTasteController(command commands.Taste, log logger.FieldLogger) *TasteController {
	return &TasteController{command: command, log: log}
}

// GetBind returns the Cobra command metadata for the taste controller.
func (it *TasteController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "taste",
		Short: "Upload local changes to a test server",
		Long: `Upload the cookbooks, roles and data bag items changed in the working
tree since the last taste to the server configured in taste.knife_config.
Uncommitted and untracked files are included.`,
	}
}

// Execute uploads the working tree delta.
func (it *TasteController) Execute(cmd *cobra.Command, _ []string) error {
	v, settings, err := commandSettings(cmd, it.log)
	if err != nil {
		return err
	}

	changeset, err := it.command.Execute(context.Background(), settings, commands.TasteOptions{
		DryRun: v.GetBool("dry-run"),
		Force:  v.GetBool("force"),
	})
	if err != nil {
		return err
	}
	it.log.Infof("Tasted %d cookbooks, %d roles, %d data bag items",
		len(changeset.Cookbooks()), len(changeset.Roles()), len(changeset.Databags()))
	return nil
}

// AddFlags adds the taste-specific flags to the given Cobra command.
func (it *TasteController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("force", false, "Upload everything, not only what changed since the last taste")
}
