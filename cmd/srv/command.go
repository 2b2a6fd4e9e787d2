package main

import "github.com/urfave/cli/v2"

func (s *srv) loadApp() {
	s.app = cli.NewApp()
	s.app.Action = cli.ShowAppHelp
	s.app.Name = "threadhub"
	s.app.Usage = "Community discussion backend"
	s.app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to a toml config file, environment variables override it",
			EnvVars: []string{"CONFIG_FILE"},
		},
	}
	s.app.Before = s.setup
	s.app.Commands = []*cli.Command{
		{
			Action:      s.startApi,
			Name:        "api",
			Usage:       "Start service api",
			Category:    "Api",
			Description: `Used for start service api, it main service included all apis.`,
		},
		{
			Action:      s.startProxy,
			Name:        "proxy",
			Usage:       "Start service live proxy",
			Category:    "Websocket",
			Description: `Used to keep live connections with clients and push events published by api.`,
		},
		{
			Action:      s.startCron,
			Name:        "cron",
			Usage:       "Start cron jobs",
			Category:    "Worker",
			Description: `Used to run periodic jobs, such as lifting expired bans.`,
		},
		{
			Action:      s.startMigrate,
			Name:        "migrate",
			Usage:       "Migrate database schema",
			Category:    "Database",
			Description: `Used to create or update all tables, then exit.`,
		},
	}
}
