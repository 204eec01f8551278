// Command prefixidx indexes a dictionary file by the key of every line and
// answers prefix queries about it.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aglyzov/prefixidx/dictfile"
	"github.com/aglyzov/prefixidx/internal/config"
	"github.com/aglyzov/prefixidx/internal/logger"
	"github.com/aglyzov/prefixidx/prefixtree"
)

// set with -ldflags "-X main.version=..."
var version = "dev"

// flag name -> config key
var boundFlags = map[string]string{
	"log-level":  "log.level",
	"log-output": "log.output",
	"sentinel":   "sentinel",
	"dictionary": "dictionary",
}

type app struct {
	cfg config.Config
	log *zap.Logger
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "prefixidx:", err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		a       = &app{log: zap.NewNop()}
		cfgFile string
	)

	root := &cobra.Command{
		Use:   "prefixidx",
		Short: "Prefix index of a dictionary file",
		Long: `prefixidx indexes the lowercase key at the start of every line of a
dictionary file and answers, for each query word, how many keys extend it
and where the word's own line is when it is a key.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd, cfgFile)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			_ = a.log.Sync()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&cfgFile, "config", "c", "", "config file (yaml, toml, json)")
	flags.StringP("dictionary", "d", "", "dictionary file used when no argument is given")
	flags.String("log-level", "", "log level (debug, info, warn, error)")
	flags.String("log-output", "", "log output ("+logger.Outputs()+")")
	flags.String("sentinel", "", "word that ends the query input")

	root.AddCommand(
		newQueryCmd(a),
		newListCmd(a),
		newStatsCmd(a),
		newCheckCmd(a),
		newVersionCmd(),
	)

	return root
}

func (a *app) setup(cmd *cobra.Command, cfgFile string) error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}

	v, err := config.New(cfgFile)
	if err != nil {
		return err
	}

	for name, key := range boundFlags {
		if err := v.BindPFlag(key, cmd.Flags().Lookup(name)); err != nil {
			return fmt.Errorf("bind flag %s: %w", name, err)
		}
	}

	cfg, err := config.Load(v)
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.log = log.Named("prefixidx")

	a.log.Debug("configured",
		zap.String("config", v.ConfigFileUsed()),
		zap.String("dictionary", cfg.Dictionary),
		zap.String("sentinel", cfg.Sentinel),
	)

	return nil
}

// loadTree indexes the dictionary given as the argument or in the config.
func (a *app) loadTree(ctx context.Context, args []string) (*prefixtree.Tree, dictfile.Stats, error) {
	path := a.cfg.Dictionary
	if len(args) > 0 {
		path = args[0]
	}
	if path == "" {
		return nil, dictfile.Stats{}, errors.New("no dictionary file given")
	}

	return a.loadFile(ctx, path)
}

func (a *app) loadFile(ctx context.Context, path string) (*prefixtree.Tree, dictfile.Stats, error) {
	tree := prefixtree.New()

	st, err := dictfile.LoadFile(ctx, path, tree, dictfile.WithLogger(a.log.With(zap.String("file", path))))
	if err != nil {
		return nil, st, err
	}

	return tree, st, nil
}
