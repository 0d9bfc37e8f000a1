package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"tasnim.dev/iam-audit/cmd"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "iam-audit",
		Short: "IAM policy collection and database query tools",
	}

	rootCmd.AddCommand(cmd.NewCollectCmd())
	rootCmd.AddCommand(cmd.NewDBCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
