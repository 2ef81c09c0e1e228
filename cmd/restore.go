package cmd

import (
	"fmt"
	"io"
	"time"

	"dumptool/internal/dump"
	"dumptool/internal/report"
	"dumptool/internal/restore"

	"github.com/spf13/cobra"
)

var (
	dbDriver   string
	dbHost     string
	dbPort     int
	dbUser     string
	dbPassword string
	dbName     string

	createDatabase bool
	dropTable      bool
	batchSize      int
	skipErrors     bool

	fromReport    bool
	restoreTables []string
)

var restoreCmd = &cobra.Command{
	Use:   "restore <file>",
	Short: "Replay a dump against a live database",
	Long: `Replay every statement of the dump against the target database, or, with
--from-report, restore only the tables recorded in a previously saved report
(or named via --tables) by locating their CREATE/INSERT statements in the
source file.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveRestoreConfig(cmd)
		if err != nil {
			return err
		}
		path := args[0]
		printHeader(path, "restore", fmt.Sprintf("🗄️  Database: %s@%s", cfg.Database, cfg.Host))
		start := time.Now()

		src, err := dump.OpenSource(path, encoding)
		if err != nil {
			return err
		}
		defer src.Cleanup()

		info, err := src.Info()
		if err != nil {
			return err
		}
		stats := report.NewStats()
		stats.FileInfo = info

		r, err := restore.New(*cfg)
		if err != nil {
			return err
		}
		defer r.Close()

		if fromReport {
			f, err := src.Open()
			if err != nil {
				return err
			}
			defer f.Close()
			if err := runScopedRestore(r, f); err != nil {
				return err
			}
		} else {
			if err := r.EnsureDatabase(); err != nil {
				return err
			}
			f, err := src.Open()
			if err != nil {
				return err
			}
			defer f.Close()

			log.Infof("Starting restore from %s to %s", src.Path, cfg.Database)
			progress, stop := byteProgress("Restoring: ", info.SizeBytes)
			executed, err := r.RestoreFile(f, progress)
			stop()
			if err != nil {
				return err
			}
			fmt.Printf("✅ Restore complete! %d statements executed\n", executed)
		}

		return finishReport(stats, map[string]any{
			"mode":        "restore",
			"file":        path,
			"driver":      cfg.Driver,
			"database":    cfg.Database,
			"batch_size":  cfg.BatchSize,
			"skip_errors": cfg.SkipErrors,
			"from_report": fromReport,
		}, start)
	},
}

// runScopedRestore restores only the tables named on the command line or
// recorded in the saved report, reading the dump through the same decoded
// stream the full restore uses.
func runScopedRestore(r *restore.Restorer, src io.Reader) error {
	rep, err := report.Load(reportPath)
	if err != nil {
		return err
	}
	tables := restoreTables
	if len(tables) == 0 {
		tables = rep.TableNames()
	}
	if len(tables) == 0 {
		return fmt.Errorf("report %s lists no tables and none were given via --tables", reportPath)
	}
	log.Infof("Restoring tables: %v", tables)
	return r.RestoreTables(src, tables)
}

// resolveRestoreConfig merges flags over the config file's database section
// (flag > config > default) and applies the mode's fail-fast validation. A
// report-based restore only requires the report path up front; connection
// problems surface at connect time.
func resolveRestoreConfig(cmd *cobra.Command) (*restore.Config, error) {
	fileCfg, err := GetDBConfig()
	if err != nil {
		return nil, err
	}

	cfg := restore.Config{
		Driver:         firstOf(dbDriver, fileCfg.Driver, "mysql"),
		Host:           firstOf(dbHost, fileCfg.Host, ""),
		Port:           dbPort,
		User:           firstOf(dbUser, fileCfg.User, ""),
		Password:       firstOf(dbPassword, fileCfg.Password, ""),
		Database:       firstOf(dbName, fileCfg.Database, ""),
		CreateDatabase: createDatabase,
		DropTable:      dropTable,
		BatchSize:      batchSize,
		SkipErrors:     skipErrors,
	}
	if !cmd.Flags().Changed("db-port") && fileCfg.Port != 0 {
		cfg.Port = fileCfg.Port
	}

	if fromReport {
		if reportPath == "" {
			return nil, fmt.Errorf("restore from report requires --report")
		}
		return &cfg, nil
	}
	if cfg.Host == "" || cfg.User == "" || cfg.Database == "" {
		return nil, fmt.Errorf("restore requires --db-host, --db-user and --db-name (or a database section in the config file)")
	}
	return &cfg, nil
}

func firstOf(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func init() {
	RootCmd.AddCommand(restoreCmd)

	restoreCmd.Flags().StringVar(&dbDriver, "driver", "", "database driver: mysql or postgres (default mysql)")
	restoreCmd.Flags().StringVar(&dbHost, "db-host", "", "database host address")
	restoreCmd.Flags().IntVar(&dbPort, "db-port", 3306, "database port")
	restoreCmd.Flags().StringVar(&dbUser, "db-user", "", "database username")
	restoreCmd.Flags().StringVar(&dbPassword, "db-password", "", "database password")
	restoreCmd.Flags().StringVar(&dbName, "db-name", "", "database name")
	restoreCmd.Flags().BoolVar(&createDatabase, "create-database", false, "create the database if it does not exist")
	restoreCmd.Flags().BoolVar(&dropTable, "drop-table", false, "drop and recreate a table that already exists (scoped restore)")
	restoreCmd.Flags().IntVar(&batchSize, "batch-size", 1000, "statements per execution batch")
	restoreCmd.Flags().BoolVar(&skipErrors, "skip-errors", false, "log and skip failing statements instead of aborting")
	restoreCmd.Flags().BoolVar(&fromReport, "from-report", false, "restore tables recorded in a saved report (requires --report)")
	restoreCmd.Flags().StringSliceVar(&restoreTables, "tables", nil, "tables to restore with --from-report (comma-separated)")
}
