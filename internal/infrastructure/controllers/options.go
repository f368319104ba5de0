package controllers

import (
	"fmt"
	"strings"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rios0rios0/grocer/internal/domain/entities"
)

const envPrefix = "GROCER"

// runtimeOptions merges the command flags with GROCER_* environment
// variables; an explicitly set flag wins over the environment.
func runtimeOptions(cmd *cobra.Command) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return nil, fmt.Errorf("failed to bind flags of %s: %w", cmd.Name(), err)
	}
	return v, nil
}

// commandSettings resolves the runtime options and loads the settings.
func commandSettings(cmd *cobra.Command, log logger.FieldLogger) (*viper.Viper, *entities.Settings, error) {
	v, err := runtimeOptions(cmd)
	if err != nil {
		return nil, nil, err
	}
	settings, err := loadSettings(v, log)
	if err != nil {
		return nil, nil, err
	}
	return v, settings, nil
}

// loadSettings reads the configuration file named by --config (or
// GROCER_CONFIG), searching the default locations when none is given.
func loadSettings(v *viper.Viper, log logger.FieldLogger) (*entities.Settings, error) {
	cfgPath := v.GetString("config")
	if cfgPath == "" {
		var err error
		cfgPath, err = entities.FindConfigFile()
		if err != nil {
			return nil, err
		}
	}

	log.Infof("Using config file: %s", cfgPath)
	return entities.NewSettings(cfgPath, log)
}
