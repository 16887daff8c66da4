package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/iamsank8/portfolio/pkg/auth"
	"github.com/iamsank8/portfolio/pkg/defaults"
)

func tokenCmd() *cli.Command {
	return &cli.Command{
		Name:  "token",
		Usage: "Mint an admin bearer token",
		Description: `Prints a token for the admin endpoints, signed with the server secret:

  curl -X POST -H "Authorization: Bearer $(portfolio token)" \
    https://api.example/admin/cache/clear`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "secret",
				Usage:   "signing secret shared with the server",
				Sources: cli.EnvVars("PORTFOLIO_ADMIN_TOKEN_SECRET"),
			},
			&cli.StringFlag{
				Name:  "subject",
				Value: "admin",
				Usage: "token subject, recorded in server logs",
			},
			&cli.DurationFlag{
				Name:  "ttl",
				Value: defaults.AdminTokenTTL,
				Usage: fmt.Sprintf("token lifetime (max %s)", defaults.AdminTokenMaxTTL),
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			secret := cmd.String("secret")
			if err := auth.ValidateSecret(secret); err != nil {
				return err
			}
			token, err := auth.NewVerifier(secret).Issue(cmd.String("subject"), cmd.Duration("ttl"))
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(stdout(cmd), token)
			return err
		},
	}
}
