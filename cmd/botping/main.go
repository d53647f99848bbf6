package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/botpinghq/botping/internal/version"
)

func main() {
	root := &cobra.Command{
		Use:   "botping",
		Short: "Liveness API for allow-listed Telegram bots",
	}
	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Start the HTTP server",
			Run: func(cmd *cobra.Command, args []string) {
				runServe()
			},
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print build information",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Println(version.GetInfo())
			},
		},
	)
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
