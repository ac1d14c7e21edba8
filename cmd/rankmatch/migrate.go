// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package main

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/leeeeeeeeujin-ctrl/starbase-sub011/pkg/config"
	"github.com/leeeeeeeeujin-ctrl/starbase-sub011/pkg/store"
)

func newMigrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "apply pending schema migrations",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "driver", Usage: "sqlite or postgres, overrides DATABASE_DRIVER"},
			&cli.StringFlag{Name: "dsn", Usage: "connection string, overrides DATABASE_DSN"},
		},
		Action: func(c *cli.Context) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if driver := c.String("driver"); driver != "" {
				cfg.DatabaseDriver = driver
			}
			if dsn := c.String("dsn"); dsn != "" {
				cfg.DatabaseDSN = dsn
			}
			if err := configureLogger(logrus.StandardLogger(), cfg.LogLevel, cfg.LogFormat); err != nil {
				return err
			}
			return migrate(c.Context, cfg)
		},
	}
}

func migrate(ctx context.Context, cfg *config.Config) error {
	st, err := store.Open(ctx, cfg.DatabaseDriver, cfg.DatabaseDSN)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.Migrate(ctx); err != nil {
		return err
	}
	logrus.WithField("driver", cfg.DatabaseDriver).Info("schema is up to date")
	return nil
}
