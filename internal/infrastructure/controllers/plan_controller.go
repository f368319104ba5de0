package controllers

import (
	"context"
	"fmt"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/grocer/internal/domain/commands"
	"github.com/rios0rios0/grocer/internal/domain/entities"
)

// PlanController handles the "plan" subcommand.
type PlanController struct {
	command commands.Plan
	log     logger.FieldLogger
}

// NewPlanController creates a new PlanController.
func NewPlanController(command commands.Plan, log logger.FieldLogger) *PlanController {
	return &PlanController{command: command, log: log}
}

// GetBind returns the Cobra command metadata for the plan controller.
func (it *PlanController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "plan",
		Short: "Show what a delivery would upload and delete",
		Long: `Classify the changes between two revisions (by default the last
delivered revision and the working tree) and print the resulting
cookbooks, roles and data bag items without contacting the server.`,
	}
}

// Execute prints the classified changeset.
func (it *PlanController) Execute(cmd *cobra.Command, _ []string) error {
	v, settings, err := commandSettings(cmd, it.log)
	if err != nil {
		return err
	}

	result, err := it.command.Execute(context.Background(), settings, commands.PlanOptions{
		FromRef: v.GetString("from"),
		ToRef:   v.GetString("to"),
		Full:    v.GetBool("full"),
	})
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), renderPlan(result))
	return err
}

// AddFlags adds the plan-specific flags to the given Cobra command.
func (it *PlanController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().String("from", "", "Base revision (default: last delivered revision)")
	cmd.Flags().String("to", "", "Target revision (default: working tree)")
	cmd.Flags().Bool("full", false, "Classify every tracked file")
}
