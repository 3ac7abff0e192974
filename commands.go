package main

import (
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/user/unidirectory-go/db"
	"github.com/user/unidirectory-go/importer"
	"github.com/user/unidirectory-go/logging"
	"github.com/user/unidirectory-go/universities"
	"github.com/user/unidirectory-go/users"
	"github.com/user/unidirectory-go/validation"
)

func migrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "manage the database schema",
		Subcommands: []*cli.Command{
			{
				Name:  "up",
				Usage: "apply all pending migrations",
				Action: func(c *cli.Context) error {
					cfg, logger, closeLogger, err := bootstrap()
					if err != nil {
						return err
					}
					defer closeLogger()
					if err := db.RunMigrations(c.Context, cfg.DBPools.ImportPool, cfg.MigrationsPath); err != nil {
						return err
					}
					logger.Info("Migrations applied", logging.Fields{"path": cfg.MigrationsPath})
					return nil
				},
			},
			{
				Name:  "down",
				Usage: "roll back the most recent migration",
				Action: func(c *cli.Context) error {
					cfg, logger, closeLogger, err := bootstrap()
					if err != nil {
						return err
					}
					defer closeLogger()
					if err := db.RollbackMigration(c.Context, cfg.DBPools.ImportPool, cfg.MigrationsPath); err != nil {
						return err
					}
					logger.Info("Rolled back one migration", logging.Fields{"path": cfg.MigrationsPath})
					return nil
				},
			},
		},
	}
}

func importCommand() *cli.Command {
	return &cli.Command{
		Name:      "import",
		Usage:     "load universities from a world_universities_and_domains.json file",
		ArgsUsage: "<file>",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "workers", Value: 3, Usage: "concurrent insert workers"},
			&cli.IntFlag{Name: "batch-size", Value: 500, Usage: "rows per insert batch"},
			&cli.BoolFlag{Name: "replace", Usage: "empty the universities table (and favorites) first"},
		},
		Action: func(c *cli.Context) error {
			path := c.Args().First()
			if path == "" {
				return cli.Exit("import: a dataset file is required", 2)
			}
			cfg, logger, closeLogger, err := bootstrap()
			if err != nil {
				return err
			}
			defer closeLogger()

			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("failed to open dataset: %w", err)
			}
			defer f.Close()

			appPool, importPool, err := db.NewDBPools(c.Context, cfg.DBPools)
			if err != nil {
				return err
			}
			defer appPool.Close()
			defer importPool.Close()

			im, err := importer.New(universities.NewPgRepository(importPool), importer.Options{
				Workers:   c.Int("workers"),
				BatchSize: c.Int("batch-size"),
				Replace:   c.Bool("replace"),
			})
			if err != nil {
				return err
			}

			started := time.Now()
			res, err := im.Run(logging.WithContext(c.Context, logger), f)
			if err != nil {
				return err
			}
			logger.Info("Import finished", logging.Fields{
				"file":        path,
				"read":        res.Read,
				"skipped":     res.Skipped,
				"inserted":    res.Inserted,
				"duration_ms": time.Since(started).Milliseconds(),
			})
			return nil
		},
	}
}

func userAddCommand() *cli.Command {
	return &cli.Command{
		Name:  "useradd",
		Usage: "create a login account",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "email", Required: true},
			&cli.StringFlag{Name: "password", Required: true, EnvVars: []string{"USERADD_PASSWORD"}},
		},
		Action: func(c *cli.Context) error {
			cfg, logger, closeLogger, err := bootstrap()
			if err != nil {
				return err
			}
			defer closeLogger()

			appPool, importPool, err := db.NewDBPools(c.Context, cfg.DBPools)
			if err != nil {
				return err
			}
			defer importPool.Close()
			defer appPool.Close()

			svc := users.NewService(users.NewStore(appPool), validation.NewValidator())
			u, err := svc.Provision(logging.WithContext(c.Context, logger), users.ProvisionRequest{
				Email:    c.String("email"),
				Password: c.String("password"),
			})
			if err != nil {
				return err
			}
			logger.Info("User created", logging.Fields{"user_id": u.ID, "email": u.Email})
			return nil
		},
	}
}
