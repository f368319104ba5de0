package controllers

import (
	"go.uber.org/dig"

	"github.com/rios0rios0/grocer/internal/domain/entities"
)

// RegisterProviders registers all controller providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register controller constructors
	if err := container.Provide(NewDeliverController); err != nil {
		return err
	}
	if err := container.Provide(NewTasteController); err != nil {
		return err
	}
	if err := container.Provide(NewPlanController); err != nil {
		return err
	}
	if err := container.Provide(NewWatchController); err != nil {
		return err
	}
	if err := container.Provide(NewControllers); err != nil {
		return err
	}

	return nil
}

// NewControllers aggregates all controllers into a slice for the AppInternal.
func NewControllers(
	deliverController *DeliverController,
	tasteController *TasteController,
	planController *PlanController,
	watchController *WatchController,
) *[]entities.Controller {
	return &[]entities.Controller{
		deliverController,
		tasteController,
		planController,
		watchController,
	}
}
