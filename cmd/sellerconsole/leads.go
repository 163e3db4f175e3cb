package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"sellerconsole/internal/jsonutil"
	"sellerconsole/internal/lead"
	"sellerconsole/internal/leadsource"
	"sellerconsole/internal/pipeline"
)

var leadsOpts struct {
	search string
	status string
	sort   string
	dir    string
	json   bool
}

var leadsCmd = &cobra.Command{
	Use:   "leads",
	Short: "Print the lead list, filtered and sorted",
	Long: `Fetches the lead list from the configured source and prints it with the
same search, status filter and sort the console applies.

Example:
  sellerconsole leads --status qualified --sort name --dir asc`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		q, err := parseQuery(leadsOpts.search, leadsOpts.status, leadsOpts.sort, leadsOpts.dir)
		if err != nil {
			return err
		}
		src := leadsource.New(cfg.Leads.URL, cfg.Leads.File, cfg.Leads.Timeout)
		leads, err := src.Fetch(cmd.Context())
		if err != nil {
			return fmt.Errorf("loading leads from %s: %w", src.Describe(), err)
		}
		view := pipeline.Apply(leads, q)
		logger.Debug("leads listed", zap.Int("total", len(leads)), zap.Int("shown", len(view)))

		if leadsOpts.json {
			return jsonutil.WriteIndented(cmd.OutOrStdout(), view)
		}
		return writeLeadTable(cmd.OutOrStdout(), view)
	},
}

func init() {
	def := pipeline.Default()
	f := leadsCmd.Flags()
	f.StringVar(&leadsOpts.search, "search", "", "Case-insensitive match on name or company")
	f.StringVar(&leadsOpts.status, "status", def.Status, "Status filter: all, new, contacted, qualified, lost")
	f.StringVar(&leadsOpts.sort, "sort", string(def.Field), "Sort field: name, company, score, status")
	f.StringVar(&leadsOpts.dir, "dir", string(def.Dir), "Sort direction: asc or desc")
	f.BoolVar(&leadsOpts.json, "json", false, "Print JSON instead of a table")
}

func parseQuery(search, status, field, dir string) (pipeline.Query, error) {
	q := pipeline.Query{Search: search}
	var ok bool
	if q.Status, ok = pipeline.ParseStatusFilter(status); !ok {
		return q, fmt.Errorf("unknown status %q", status)
	}
	if q.Field, ok = pipeline.ParseField(field); !ok {
		return q, fmt.Errorf("unknown sort field %q", field)
	}
	if q.Dir, ok = pipeline.ParseDirection(dir); !ok {
		return q, fmt.Errorf("unknown sort direction %q", dir)
	}
	return q, nil
}

func writeLeadTable(w io.Writer, leads []lead.Lead) error {
	if len(leads) == 0 {
		_, err := fmt.Fprintln(w, "No leads found matching your criteria.")
		return err
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "NAME", "COMPANY", "EMAIL", "SOURCE", "SCORE", "STATUS")
	for _, l := range leads {
		t.Row(l.ID, l.Name, l.Company, l.Email, l.Source, strconv.Itoa(l.Score), l.Status.Label())
	}
	_, err := fmt.Fprintln(w, t.Render())
	return err
}
