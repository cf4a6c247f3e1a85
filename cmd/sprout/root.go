package main

import (
	"fmt"
	"io"

	"github.com/Gobusters/ectologger"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/Ramsey-B/sprout/config"
	appcontext "github.com/Ramsey-B/sprout/pkg/context"
	"github.com/Ramsey-B/sprout/pkg/logging"
)

// app holds what every subcommand needs once the root command has run.
type app struct {
	config *config.Config
	logger ectologger.Logger
	sync   func()

	dir     string
	pattern string
	topics  string
	level   string
}

func newRootCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "sprout",
		Short:         "Normalize topic documents into pages and seed them into the content database",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if a.sync != nil {
				a.sync()
			}
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.dir, "dir", "", "directory holding one <slug>.json file per topic (overrides DATA_DIR)")
	flags.StringVar(&a.pattern, "pattern", "", "glob selecting document files inside --dir (overrides DATA_PATTERN)")
	flags.StringVar(&a.topics, "topics", "", "YAML file mapping slugs to topic names (overrides TOPICS_FILE)")
	flags.StringVar(&a.level, "log-level", "", "log level (overrides LOG_LEVEL)")

	cmd.AddCommand(newSeedCommand(a))
	cmd.AddCommand(newTransformCommand(a))
	cmd.AddCommand(newMigrateCommand(a))

	return cmd
}

func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if a.dir != "" {
		cfg.DataDir = a.dir
	}
	if a.pattern != "" {
		cfg.DataPattern = a.pattern
	}
	if a.topics != "" {
		cfg.TopicsFile = a.topics
	}
	if a.level != "" {
		cfg.LogLevel = a.level
	}

	logger, sync, err := logging.New(cfg.Logging())
	if err != nil {
		return err
	}

	ctx := appcontext.SetRunID(cmd.Context(), uuid.NewString())
	ctx = appcontext.SetDataDir(ctx, cfg.DataDir)
	cmd.SetContext(ctx)

	a.config = cfg
	a.logger = logger.WithFields(appcontext.LogFields(ctx))
	a.sync = sync
	return nil
}

// report surfaces a command failure through the run logger, or on w when the
// failure happened before the logger was built.
func (a *app) report(w io.Writer, err error) {
	if a.logger == nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return
	}
	a.logger.WithError(err).Error("Command failed")
	if a.sync != nil {
		a.sync()
	}
}
