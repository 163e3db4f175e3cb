package main

import (
	"github.com/spf13/cobra"

	"sellerconsole/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the lead list over HTTP",
	Long: `Serves the lead document at GET /leads.json for consoles started with
--leads-url, plus /healthz and Prometheus /metrics.

Without --leads-file the built-in sample leads are served.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := server.LoadDocument(cfg.Server.LeadsFile)
		if err != nil {
			return err
		}
		srv, err := server.New(doc, logger)
		if err != nil {
			return err
		}
		return srv.Run(cmd.Context(), cfg.Server.Addr)
	},
}

func init() {
	serveCmd.Flags().String("addr", ":8080", "Listen address")
	serveCmd.Flags().String("file", "", "Lead document to serve (default: built-in sample)")
	_ = v.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr"))
	_ = v.BindPFlag("server.leads_file", serveCmd.Flags().Lookup("file"))
}
