package cli

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/iamsank8/portfolio/pkg/api"
	"github.com/iamsank8/portfolio/pkg/config"
)

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the content API server",
		Description: `Runs the HTTP API. Configuration comes from the environment
(PORT, PORTFOLIO_STORE, PORTFOLIO_ALLOWED_ORIGINS, ...); --port overrides PORT.`,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "port",
				Usage: "listen port",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cmd.IsSet("port") {
				cfg.Port = int(cmd.Int("port"))
				if err := cfg.Validate(); err != nil {
					return err
				}
			}
			return api.Run(ctx, cfg)
		},
	}
}
