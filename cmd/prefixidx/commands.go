package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aglyzov/prefixidx/prefixtree"
	"github.com/aglyzov/prefixidx/query"
)

func newQueryCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "query [dictionary]",
		Short: "Answer prefix queries read from stdin",
		Long: `Answer prefix queries read from stdin until the sentinel word.

Without a dictionary argument (and none configured) the first input word
is taken as the dictionary file name.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				sc   = query.NewWordScanner(cmd.InOrStdin())
				path = a.cfg.Dictionary
			)

			if len(args) > 0 {
				path = args[0]
			}
			if path == "" {
				if !sc.Scan() {
					if err := sc.Err(); err != nil {
						return fmt.Errorf("read dictionary name: %w", err)
					}
					return errors.New("no dictionary file given")
				}
				path = sc.Text()
			}

			tree, _, err := a.loadFile(cmd.Context(), path)
			if err != nil {
				return err
			}

			session := query.NewSession(tree, cmd.OutOrStdout(),
				query.WithSentinel(a.cfg.Sentinel),
				query.WithLogger(a.log),
			)

			return session.Scan(sc)
		},
	}
}

func newListCmd(a *app) *cobra.Command {
	var (
		prefix    string
		positions bool
	)

	cmd := &cobra.Command{
		Use:   "list [dictionary]",
		Short: "Print the indexed keys in alphabetical order",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tree, _, err := a.loadTree(cmd.Context(), args)
			if err != nil {
				return err
			}

			var (
				out     = cmd.OutOrStdout()
				printed int
				werr    error
			)

			tree.Iter(prefix, func(e prefixtree.Entry) bool {
				if positions {
					_, werr = fmt.Fprintf(out, "%s\t%d\t%d\n", e.Key, e.Position, e.Length)
				} else {
					_, werr = fmt.Fprintln(out, e.Key)
				}
				printed++
				return werr == nil
			})

			if werr != nil {
				return fmt.Errorf("write keys: %w", werr)
			}

			a.log.Debug("listed keys", zap.Int("keys", printed), zap.String("prefix", prefix))

			return nil
		},
	}

	cmd.Flags().StringVarP(&prefix, "prefix", "p", "", "list only keys starting with the prefix")
	cmd.Flags().BoolVar(&positions, "positions", false, "print the position and length of every key")

	return cmd
}

func newStatsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats [dictionary]",
		Short: "Print dictionary and index statistics",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tree, st, err := a.loadTree(cmd.Context(), args)
			if err != nil {
				return err
			}

			ts := tree.Stats()
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)

			for _, row := range []struct {
				name string
				val  interface{}
			}{
				{"lines", st.Lines},
				{"indexed", st.Indexed},
				{"skipped", st.Skipped},
				{"bytes", st.Bytes},
				{"keys", ts.Records},
				{"nodes", ts.Nodes},
				{"leaves", ts.Leaves},
				{"branches", ts.Branches},
				{"edges", ts.Edges},
				{"max depth", ts.MaxDepth},
			} {
				fmt.Fprintf(w, "%s:\t%v\n", row.name, row.val)
			}

			return w.Flush()
		},
	}
}

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check [dictionary]",
		Short: "Index a dictionary and verify the index invariants",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tree, _, err := a.loadTree(cmd.Context(), args)
			if err != nil {
				return err
			}

			if err := tree.Verify(); err != nil {
				return err
			}

			// remove everything back to an empty index
			for _, key := range tree.Keys() {
				for tree.Contains(key) {
					if err := tree.Remove(key); err != nil {
						return err
					}
				}
			}

			if err := tree.Verify(); err != nil {
				return err
			}
			if !tree.Empty() {
				return fmt.Errorf("%w: %d inserts left after removing every key", prefixtree.ErrCorrupted, tree.Len())
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), "ok")

			return err
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "prefixidx", version)
			return err
		},
	}
}
