// Command fleetctl is a terminal client for the fleet API: it lists,
// summarizes, exports and deletes records and opens stored documents.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"
	"text/tabwriter"

	"fleet-backend/internal/config"
	"fleet-backend/internal/dates"
	"fleet-backend/internal/fetch"

	"github.com/spf13/cobra"
)

type app struct {
	api *fetch.APIClient
	in  *bufio.Reader
	out io.Writer
}

func newRootCmd(a *app) *cobra.Command {
	var apiURL, token string

	root := &cobra.Command{
		Use:           "fleetctl",
		Short:         "Terminal client for the fleet back office",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cfg := config.LoadClient()
			if apiURL == "" {
				apiURL = cfg.APIURL
			}
			if token == "" {
				token = cfg.APIToken
			}
			a.api = fetch.NewAPIClient(apiURL, token)
		},
	}
	root.PersistentFlags().StringVar(&apiURL, "api-url", "", "API base URL (default $FLEET_API_URL)")
	root.PersistentFlags().StringVar(&token, "token", "", "Bearer token (default $FLEET_API_TOKEN)")

	root.AddCommand(
		newListCmd(a),
		newSummaryCmd(a),
		newExportCmd(a),
		newDeleteCmd(a),
		newDocCmd(a),
		&cobra.Command{
			Use:   "lists",
			Short: "Show the available list names",
			Run: func(cmd *cobra.Command, args []string) {
				for _, n := range screenNames() {
					fmt.Fprintln(a.out, n)
				}
			},
		},
	)
	return root
}

// parseFilters turns key=value pairs into list filters.
func parseFilters(pairs []string) (map[string]string, error) {
	f := map[string]string{}
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		if !ok || strings.TrimSpace(k) == "" {
			return nil, fmt.Errorf("filter %q must look like key=value", p)
		}
		k, v = strings.TrimSpace(k), strings.TrimSpace(v)
		if k == "from" || k == "to" {
			iso := dates.ToServerFormat(&v)
			if iso == nil {
				return nil, fmt.Errorf("filter %s=%q is not a date", k, v)
			}
			v = *iso
		}
		f[k] = v
	}
	return f, nil
}

func writeTable(w io.Writer, t table) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(t.header, "\t"))
	for _, r := range t.rows {
		fmt.Fprintln(tw, strings.Join(r, "\t"))
	}
	return tw.Flush()
}

func newListCmd(a *app) *cobra.Command {
	var filters []string
	var opts listOptions

	cmd := &cobra.Command{
		Use:   "list <list>",
		Short: "Print a list, filtered and sorted",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := lookupScreen(args[0])
			if err != nil {
				return err
			}
			if opts.filters, err = parseFilters(filters); err != nil {
				return err
			}
			t, err := s.list(cmd.Context(), a.api, opts)
			if err != nil {
				return err
			}
			return writeTable(a.out, t)
		},
	}
	cmd.Flags().StringArrayVarP(&filters, "filter", "f", nil, "Filter as key=value (repeatable)")
	cmd.Flags().StringVar(&opts.sort, "sort", "", "Sort key")
	cmd.Flags().StringVar(&opts.dir, "dir", "", "Sort direction: asc or desc")
	return cmd
}

func newSummaryCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "summary <list>",
		Short: "Print the aggregates of a list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/api/dashboard"
			if args[0] != "dashboard" {
				s, err := lookupScreen(args[0])
				if err != nil {
					return err
				}
				path = s.path() + "/summary"
			}
			var out map[string]any
			if err := a.api.Get(cmd.Context(), path, &out); err != nil {
				return err
			}
			enc := json.NewEncoder(a.out)
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		},
	}
}

func newExportCmd(a *app) *cobra.Command {
	var filters []string
	var output string
	var master bool

	cmd := &cobra.Command{
		Use:   "export <list>",
		Short: "Download a list as .xlsx",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := lookupScreen(args[0])
			if err != nil {
				return err
			}
			f, err := parseFilters(filters)
			if err != nil {
				return err
			}

			path := s.path() + "/export"
			if master {
				if args[0] != "employees" {
					return errors.New("master data export exists for employees only")
				}
				path = s.path() + "/export/master"
			}
			q := url.Values{}
			for k, v := range f {
				q.Set(k, v)
			}
			if len(q) > 0 {
				path += "?" + q.Encode()
			}

			data, _, err := a.api.Download(cmd.Context(), path)
			if err != nil {
				return err
			}
			if output == "" {
				output = s.exportFile()
				if master {
					output = "employee_master_data.xlsx"
				}
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "wrote %s (%d bytes)\n", output, len(data))
			return nil
		},
	}
	cmd.Flags().StringArrayVarP(&filters, "filter", "f", nil, "Filter as key=value (repeatable)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: the list's export name)")
	cmd.Flags().BoolVar(&master, "master", false, "Employee master data layout")
	return cmd
}

func (a *app) confirm(prompt string) bool {
	fmt.Fprintf(a.out, "%s [y/N] ", prompt)
	line, _ := a.in.ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

func newDeleteCmd(a *app) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <list> <key>",
		Short: "Delete one record after confirmation",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := lookupScreen(args[0])
			if err != nil {
				return err
			}
			confirm := a.confirm
			if yes {
				confirm = func(string) bool { return true }
			}
			err = s.remove(cmd.Context(), a.api, args[1], confirm)
			if errors.Is(err, errCancelled) {
				fmt.Fprintln(a.out, "nothing deleted")
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "deleted %s\n", args[1])
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}

func main() {
	a := &app{in: bufio.NewReader(os.Stdin), out: os.Stdout}
	if err := newRootCmd(a).ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
