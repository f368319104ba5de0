package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/grocer/internal"
	"github.com/rios0rios0/grocer/internal/domain/entities"
)

// flagAdder is implemented by controllers that own subcommand-specific flags.
type flagAdder interface {
	AddFlags(cmd *cobra.Command)
}

func buildRootCommand(log *logger.Logger) *cobra.Command {
	//nolint:exhaustruct // Minimal Command initialization with required fields only
	cmd := &cobra.Command{
		Use:   "grocer",
		Short: "Deliver Chef cookbooks, roles and data bags from a VCS checkout",
		Long: `Detects which cookbooks, roles and data bag items changed in a Git or
Subversion checkout and uploads or deletes exactly those on the Chef server.

Usage modes:
  grocer deliver   Deliver everything since the last delivered revision (cronjob)
  grocer watch     Deliver continuously
  grocer taste     Upload local changes to a test server
  grocer plan      Show what would be delivered`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(command *cobra.Command, _ []string) {
			verbose, _ := command.Flags().GetBool("verbose")
			if verbose || os.Getenv("GROCER_VERBOSE") == "true" {
				log.SetLevel(logger.DebugLevel)
			}
		},
	}

	// Global persistent flags
	cmd.PersistentFlags().StringP("config", "c", "",
		"Path to config file (default: auto-detect)")
	cmd.PersistentFlags().Bool("dry-run", false,
		"Show what would be done without making changes")
	cmd.PersistentFlags().BoolP("verbose", "v", false,
		"Enable verbose output")

	return cmd
}

func addSubcommands(rootCmd *cobra.Command, appContext *internal.AppInternal) {
	for _, controller := range appContext.GetControllers() {
		bind := controller.GetBind()
		ctrl := controller // capture for closure
		//nolint:exhaustruct // Minimal Command initialization with required fields only
		subCmd := &cobra.Command{
			Use:   bind.Use,
			Short: bind.Short,
			Long:  bind.Long,
			Args:  cobra.NoArgs,
			RunE: func(command *cobra.Command, arguments []string) error {
				return ctrl.Execute(command, arguments)
			},
		}

		// Add controller-specific flags
		if fa, ok := ctrl.(flagAdder); ok {
			fa.AddFlags(subCmd)
		}

		rootCmd.AddCommand(subCmd)
	}
}

// reportFailure prints the error, plus the offending line and the raw diff
// when the VCS output could not be parsed.
func reportFailure(w io.Writer, log logger.FieldLogger, err error) {
	var parseErr *entities.ParseError
	if errors.As(err, &parseErr) {
		_, _ = fmt.Fprintf(w, "Unable to parse %s diff line:\n%s\n\nFull output:\n%s\n",
			parseErr.Backend, parseErr.Line, parseErr.Output)
	}
	log.Errorf("Error executing 'grocer': %s", err)
}

func main() {
	log := logger.New()
	//nolint:exhaustruct // Minimal TextFormatter initialization with required fields only
	log.SetFormatter(&logger.TextFormatter{
		ForceColors:   true,
		FullTimestamp: true,
	})
	if os.Getenv("DEBUG") == "true" {
		log.SetLevel(logger.DebugLevel)
	}

	cobraRoot := buildRootCommand(log)

	// Add all subcommands
	appContext := injectAppContext(log)
	addSubcommands(cobraRoot, appContext)

	if err := cobraRoot.Execute(); err != nil {
		reportFailure(os.Stderr, log, err)
		os.Exit(1)
	}
}
