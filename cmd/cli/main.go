package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/lendfolio/lendfolio/cmd/cli/pack"
	"github.com/spf13/cobra"
)

func init() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	rootCmd.AddGroup(pack.Group)
	rootCmd.AddCommand(pack.Flow)
	rootCmd.AddCommand(pack.Render)
}

var rootCmd = &cobra.Command{
	Use:  "lendfolio-cli",
	Long: `Command line utilities for Lendfolio https://github.com/lendfolio/lendfolio`,
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func main() {
	Execute()
}
