package cli

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/iamsank8/portfolio/pkg/defaults"
	"github.com/iamsank8/portfolio/pkg/store"
)

func backupCmd() *cli.Command {
	return &cli.Command{
		Name:  "backup",
		Usage: "Back up every collection to a timestamped directory",
		Description: `Writes <dir>/backup-<timestamp>/<collection>.json for each collection and a
metadata.json manifest. The manifest is also written to --output.`,
		Flags: withOutput(append(storeFlags(),
			&cli.StringFlag{
				Name:  "dir",
				Value: "backups",
				Usage: "parent directory for backups",
			},
			&cli.StringSliceFlag{
				Name:  "collection",
				Usage: "limit to these collections (default: all non-empty collections)",
			},
		)...),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			st, err := openStore(ctx, cmd)
			if err != nil {
				return err
			}
			defer st.Close()

			ctx, cancel := context.WithTimeout(ctx, defaults.StoreWriteTimeout)
			defer cancel()

			now := time.Now()
			dir := filepath.Join(cmd.String("dir"), store.BackupDirName(now))
			meta, err := store.Backup(ctx, st, dir, cmd.StringSlice("collection"), now)
			if err != nil {
				return fmt.Errorf("backup failed: %w", err)
			}
			slog.Info("backup completed", "dir", dir, "collections", meta.TotalCollections)
			return writeResult(ctx, cmd, meta)
		},
	}
}

func restoreCmd() *cli.Command {
	return &cli.Command{
		Name:      "restore",
		Usage:     "Restore a backup directory into the store",
		ArgsUsage: "<backup-dir>",
		Flags:     withOutput(storeFlags()...),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			dir := cmd.Args().First()
			if dir == "" {
				return fmt.Errorf("backup directory is required")
			}

			st, err := openStore(ctx, cmd)
			if err != nil {
				return err
			}
			defer st.Close()

			ctx, cancel := context.WithTimeout(ctx, defaults.StoreWriteTimeout)
			defer cancel()

			restored, err := store.Restore(ctx, st, dir)
			if err != nil {
				return fmt.Errorf("restore failed: %w", err)
			}
			slog.Info("restore completed", "dir", dir, "collections", len(restored))
			return writeResult(ctx, cmd, restored)
		},
	}
}
