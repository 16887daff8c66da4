package api

import (
	"context"
	"log/slog"

	"github.com/iamsank8/portfolio/pkg/config"
	cerrors "github.com/iamsank8/portfolio/pkg/errors"
	"github.com/iamsank8/portfolio/pkg/store"
	"github.com/iamsank8/portfolio/pkg/store/firestore"
	"github.com/iamsank8/portfolio/pkg/store/sqlite"
)

// OpenStore opens the configured document store. With PORTFOLIO_STORE=none it
// returns a nil store and the API serves the embedded datasets.
func OpenStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	switch cfg.Store {
	case config.StoreNone, "":
		slog.Info("no document store configured, serving embedded content")
		return nil, nil
	case config.StoreSQLite:
		s, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		slog.Info("document store opened", "store", cfg.Store, "path", cfg.SQLitePath)
		return s, nil
	case config.StoreFirestore:
		s, err := firestore.Open(ctx, firestore.Options{
			ProjectID:       cfg.ProjectID,
			CredentialsFile: cfg.CredentialsPath,
		})
		if err != nil {
			return nil, err
		}
		slog.Info("document store opened", "store", cfg.Store, "project", cfg.ProjectID)
		return s, nil
	default:
		return nil, cerrors.NewWithContext(cerrors.ErrCodeInvalidRequest, "unsupported store",
			map[string]any{"store": cfg.Store})
	}
}
