// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Command rankmatch serves room verification and manages the rank match schema.
package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

const serviceName = "rankmatch"

func main() {
	app := &cli.App{
		Name:  serviceName,
		Usage: "role balanced rank matchmaking with server side verification",
		Commands: []*cli.Command{
			newServeCommand(),
			newMigrateCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		logrus.WithError(err).Fatal("rankmatch exited")
	}
}
