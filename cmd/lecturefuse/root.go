package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/lecture-fuse/internal/config"
	"github.com/nguyentantai21042004/lecture-fuse/internal/importer"
	"github.com/nguyentantai21042004/lecture-fuse/internal/logger"
	"github.com/nguyentantai21042004/lecture-fuse/internal/processor"
	"github.com/nguyentantai21042004/lecture-fuse/internal/store/sqlite"
)

// app holds the dependencies shared by all subcommands
type app struct {
	cfg      *config.Config
	log      logger.Logger
	store    *sqlite.Store
	importer importer.Importer
	proc     processor.Processor
}

func (a *app) close() {
	if a.store != nil {
		a.store.Close()
	}
	if a.log != nil {
		_ = logger.Sync(a.log)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configPath string
		a          = &app{}
	)

	root := &cobra.Command{
		Use:   "lecturefuse",
		Short: "Rebuild full sentences from timestamped lecture transcripts",
		Long: `lecturefuse imports lecture metadata and timestamped transcript excerpts
into SQLite and fuses consecutive excerpts into complete sentences.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd.Context(), configPath)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.close()
		},
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "path to config file")

	root.AddCommand(
		newImportCmd(a),
		newFuseCmd(a),
		newRunCmd(a),
		newWatchCmd(a),
		newExportCmd(a),
		newSummarizeCmd(a),
	)
	return root
}

func (a *app) init(ctx context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	a.cfg = cfg

	a.log = logger.NewWithWriter(cfg.Logging.Level, cfg.Logging.Format, os.Stdout)
	a.log.Debug(ctx, "Configuration loaded from %s", configPath)

	st, err := sqlite.NewStore(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	a.store = st

	a.importer = importer.New(st, a.log)
	a.proc = processor.New(cfg, st, a.importer, a.log)
	return nil
}
