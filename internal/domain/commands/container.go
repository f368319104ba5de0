package commands

import (
	"go.uber.org/dig"
)

// RegisterProviders registers all command providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register command constructors
	if err := container.Provide(NewChangesetLoader); err != nil {
		return err
	}
	if err := container.Provide(NewDeltaCommand); err != nil {
		return err
	}
	if err := container.Provide(NewDeliverCommand); err != nil {
		return err
	}
	if err := container.Provide(NewTasteCommand); err != nil {
		return err
	}
	if err := container.Provide(NewPlanCommand); err != nil {
		return err
	}

	// Bind interfaces to implementations
	if err := container.Provide(func(impl *DeltaCommand) Delta {
		return impl
	}); err != nil {
		return err
	}
	if err := container.Provide(func(impl *DeliverCommand) Deliver {
		return impl
	}); err != nil {
		return err
	}
	if err := container.Provide(func(impl *TasteCommand) Taste {
		return impl
	}); err != nil {
		return err
	}
	if err := container.Provide(func(impl *PlanCommand) Plan {
		return impl
	}); err != nil {
		return err
	}

	return nil
}
