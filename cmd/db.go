package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tasnim.dev/iam-audit/internal/config"
	"tasnim.dev/iam-audit/internal/db"
	"tasnim.dev/iam-audit/internal/utils"
)

func NewDBCmd() *cobra.Command {
	var flags config.DatabaseConfig

	cmd := &cobra.Command{
		Use:   "db",
		Short: "Run queries against a relational database",
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.Driver, "driver", "", "database driver (sqlite, pgx)")
	pf.StringVar(&flags.Username, "user", "", "database user")
	pf.StringVar(&flags.Password, "password", "", "database password")
	pf.StringVar(&flags.Address, "address", "", "host:port/service, or the database file for sqlite")
	pf.StringVar(&flags.DriverLocation, "driver-location", "", "directory of native client libraries to put on PATH")
	pf.BoolVar(&flags.Debug, "debug", false, "write failures to a daily error log")
	pf.StringVar(&flags.LogDir, "log-dir", "", "directory for the error log")

	cmd.AddCommand(newDBQueryCmd(&flags))
	cmd.AddCommand(newDBExecCmd(&flags))
	cmd.AddCommand(newDBInsertCmd(&flags))

	return cmd
}

func newExecutor(flags *config.DatabaseConfig) (*db.Executor, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	dbCfg := cfg.MergeDatabase(*flags)

	return db.New(db.Config{
		Driver:         dbCfg.Driver,
		Username:       dbCfg.Username,
		Password:       dbCfg.Password,
		Address:        dbCfg.Address,
		DriverLocation: dbCfg.DriverLocation,
		Debug:          dbCfg.Debug,
		LogDir:         dbCfg.LogDir,
	})
}

func newDBQueryCmd(flags *config.DatabaseConfig) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "query <sql>",
		Short: "Run a query and print the result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ex, err := newExecutor(flags)
			if err != nil {
				return err
			}
			defer ex.Close()

			table, err := ex.GetData(context.Background(), args[0])
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(table.Records())
			}
			fmt.Fprintln(cmd.OutOrStdout(), utils.RenderTable(table.Columns, table.Strings()))
			fmt.Fprintf(cmd.OutOrStdout(), "%d row(s)\n", table.Len())
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print rows as JSON objects")

	return cmd
}

func newDBExecCmd(flags *config.DatabaseConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "exec <sql>",
		Short: "Execute a statement and commit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ex, err := newExecutor(flags)
			if err != nil {
				return err
			}
			defer ex.Close()

			if err := ex.UpdateData(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "OK")
			return nil
		},
	}
}

func newDBInsertCmd(flags *config.DatabaseConfig) *cobra.Command {
	var rowsFile string

	cmd := &cobra.Command{
		Use:   "insert <sql>",
		Short: "Execute a statement once per row from a YAML file, in one transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(rowsFile)
			if err != nil {
				return fmt.Errorf("reading rows: %w", err)
			}
			rows, err := db.ParseRows(data)
			if err != nil {
				return err
			}

			ex, err := newExecutor(flags)
			if err != nil {
				return err
			}
			defer ex.Close()

			if err := ex.InsertData(context.Background(), args[0], rows); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "inserted %d row(s)\n", len(rows))
			return nil
		},
	}

	cmd.Flags().StringVar(&rowsFile, "rows", "", "YAML file with a list of rows")
	_ = cmd.MarkFlagRequired("rows")

	return cmd
}
