package cli

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/iamsank8/portfolio/pkg/content"
	"github.com/iamsank8/portfolio/pkg/defaults"
)

// CountResult is the output of the count command.
type CountResult struct {
	Collection string `json:"collection" yaml:"collection"`
	Documents  int    `json:"documents" yaml:"documents"`
}

func categoriesFlag() cli.Flag {
	return &cli.StringSliceFlag{
		Name:    "category",
		Aliases: []string{"c"},
		Usage:   "limit to these categories (default: all)",
	}
}

func parseCategories(names []string) ([]content.Category, error) {
	if len(names) == 0 {
		return content.Categories(), nil
	}
	out := make([]content.Category, 0, len(names))
	for _, n := range names {
		c, ok := content.ParseCategory(n)
		if !ok {
			return nil, fmt.Errorf("unknown category %q (supported: %v)", n, content.Categories())
		}
		out = append(out, c)
	}
	return out, nil
}

func seedCmd() *cli.Command {
	return &cli.Command{
		Name:  "seed",
		Usage: "Write the embedded datasets into the store",
		Description: `Writes the embedded fallback records of each category into the store,
stamping createdAt and updatedAt. Existing documents with the same ID are replaced.`,
		Flags: withOutput(append(storeFlags(), categoriesFlag())...),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			categories, err := parseCategories(cmd.StringSlice("category"))
			if err != nil {
				return err
			}

			st, err := openStore(ctx, cmd)
			if err != nil {
				return err
			}
			defer st.Close()

			ctx, cancel := context.WithTimeout(ctx, defaults.StoreWriteTimeout)
			defer cancel()

			result, err := content.Seed(ctx, st, categories, time.Now())
			if err != nil {
				return fmt.Errorf("seed failed: %w", err)
			}
			slog.Info("store seeded", "categories", len(result))
			return writeResult(ctx, cmd, result)
		},
	}
}

func clearCmd() *cli.Command {
	return &cli.Command{
		Name:  "clear",
		Usage: "Delete the content collections",
		Flags: withOutput(append(storeFlags(),
			categoriesFlag(),
			&cli.BoolFlag{
				Name:  "yes",
				Usage: "confirm deletion of all documents",
			},
		)...),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if !cmd.Bool("yes") {
				return fmt.Errorf("clear deletes every document in the selected collections; re-run with --yes to confirm")
			}
			categories, err := parseCategories(cmd.StringSlice("category"))
			if err != nil {
				return err
			}

			st, err := openStore(ctx, cmd)
			if err != nil {
				return err
			}
			defer st.Close()

			ctx, cancel := context.WithTimeout(ctx, defaults.StoreWriteTimeout)
			defer cancel()

			deleted := make(map[string]int, len(categories))
			for _, c := range categories {
				n, err := st.Clear(ctx, c.Collection())
				if err != nil {
					return fmt.Errorf("clear %s: %w", c, err)
				}
				slog.Warn("collection cleared", "collection", c.Collection(), "documents", n)
				deleted[c.Collection()] = n
			}
			return writeResult(ctx, cmd, deleted)
		},
	}
}

func countCmd() *cli.Command {
	return &cli.Command{
		Name:      "count",
		Usage:     "Count the documents in a collection",
		ArgsUsage: "<collection>",
		Flags:     withOutput(storeFlags()...),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			collection := cmd.Args().First()
			if collection == "" {
				return fmt.Errorf("collection name is required")
			}

			st, err := openStore(ctx, cmd)
			if err != nil {
				return err
			}
			defer st.Close()

			n, err := st.Count(ctx, collection)
			if err != nil {
				return err
			}
			return writeResult(ctx, cmd, CountResult{Collection: collection, Documents: n})
		},
	}
}

func listCmd() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List the collections holding documents",
		Flags: withOutput(storeFlags()...),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			st, err := openStore(ctx, cmd)
			if err != nil {
				return err
			}
			defer st.Close()

			names, err := st.Collections(ctx)
			if err != nil {
				return err
			}
			if names == nil {
				names = []string{}
			}
			return writeResult(ctx, cmd, names)
		},
	}
}
