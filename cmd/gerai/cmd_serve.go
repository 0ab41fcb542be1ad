package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/prasetyadi/gerai/app/routes"
	"github.com/prasetyadi/gerai/internal/server"
)

// gerai serve
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the storefront HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return server.Start()
	},
}

// gerai route:list
var routeListCmd = &cobra.Command{
	Use:   "route:list",
	Short: "Print every registered route",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Printf("%-6s  %-22s  %s\n", "METHOD", "PATH", "NAME")
		for _, rt := range routes.Table() {
			fmt.Printf("%-6s  %-22s  %s\n", rt.Method, rt.Path, rt.Name)
		}
		return nil
	},
}
