package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/iamsank8/portfolio/pkg/api"
	"github.com/iamsank8/portfolio/pkg/config"
	"github.com/iamsank8/portfolio/pkg/serializer"
	"github.com/iamsank8/portfolio/pkg/store"
)

func outputFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "output file path (default: stdout)",
	}
}

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"t"},
		Value:   string(serializer.FormatYAML),
		Usage:   fmt.Sprintf("output format (supported: %s)", strings.Join(serializer.SupportedFormats(), ", ")),
	}
}

// storeFlags select the document store for data commands.
func storeFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "store",
			Value:   config.StoreSQLite,
			Usage:   fmt.Sprintf("document store (supported: %s, %s)", config.StoreSQLite, config.StoreFirestore),
			Sources: cli.EnvVars("PORTFOLIO_STORE"),
		},
		&cli.StringFlag{
			Name:    "db",
			Value:   "portfolio.db",
			Usage:   "SQLite database path",
			Sources: cli.EnvVars("PORTFOLIO_SQLITE_PATH"),
		},
		&cli.StringFlag{
			Name:    "project",
			Value:   "portfolio-sanket-c5165",
			Usage:   "Firebase project ID",
			Sources: cli.EnvVars("FIREBASE_PROJECT_ID"),
		},
		&cli.StringFlag{
			Name:    "credentials",
			Usage:   "service account key file (default: application default credentials)",
			Sources: cli.EnvVars("GOOGLE_APPLICATION_CREDENTIALS"),
		},
	}
}

// withOutput appends the output flags to flags.
func withOutput(flags ...cli.Flag) []cli.Flag {
	return append(flags, outputFlag(), formatFlag())
}

// parseOutputFormat validates the --format flag.
func parseOutputFormat(cmd *cli.Command) (serializer.Format, error) {
	f := serializer.Format(cmd.String("format"))
	if f.IsUnknown() {
		return "", fmt.Errorf("unknown output format: %q", f)
	}
	return f, nil
}

// openStore opens the store selected by the store flags. Data commands need
// a real store, so "none" is rejected.
func openStore(ctx context.Context, cmd *cli.Command) (store.Store, error) {
	cfg := &config.Config{
		Store:           strings.ToLower(strings.TrimSpace(cmd.String("store"))),
		SQLitePath:      cmd.String("db"),
		ProjectID:       cmd.String("project"),
		CredentialsPath: cmd.String("credentials"),
	}
	if cfg.Store == config.StoreNone || cfg.Store == "" {
		return nil, fmt.Errorf("a document store is required (--store %s or %s)", config.StoreSQLite, config.StoreFirestore)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return api.OpenStore(ctx, cfg)
}

// writeResult serializes v to --output in --format.
func writeResult(ctx context.Context, cmd *cli.Command, v any) error {
	format, err := parseOutputFormat(cmd)
	if err != nil {
		return err
	}

	var w *serializer.Writer
	if path := cmd.String("output"); path != "" && path != "-" {
		if w, err = serializer.NewFileWriter(format, path); err != nil {
			return err
		}
	} else {
		w = serializer.NewWriter(format, stdout(cmd))
	}
	defer func() { _ = w.Close() }()

	if err := w.Serialize(ctx, v); err != nil {
		return err
	}
	return w.Close()
}

func stdout(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}
