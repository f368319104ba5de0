package main

import (
	logger "github.com/sirupsen/logrus"
	"go.uber.org/dig"

	"github.com/rios0rios0/grocer/internal"
)

func injectAppContext(log *logger.Logger) *internal.AppInternal {
	container := dig.New()

	// The logger is configured by main and shared by every component
	if err := container.Provide(func() logger.FieldLogger { return log }); err != nil {
		panic(err)
	}

	// Register all providers
	if err := internal.RegisterProviders(container); err != nil {
		panic(err)
	}

	// Invoke to get AppInternal
	var appInternal *internal.AppInternal
	if err := container.Invoke(func(ai *internal.AppInternal) {
		appInternal = ai
	}); err != nil {
		panic(err)
	}

	return appInternal
}
