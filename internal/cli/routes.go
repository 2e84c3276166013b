package cli

import (
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ManuelReschke/foxcms/internal/pkg/routes"
)

func newRoutesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "routes",
		Short: "List the route table in match order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := loadTable()
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "PRIORITY\tNAME\tSECTION\tTYPE\tDISPATCH")
			for _, r := range table.Routes() {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", r.Priority, r.Name, r.Section, r.Type, defaultsOf(r))
			}
			return w.Flush()
		},
	}

	cmd.AddCommand(newRoutesMatchCmd())
	return cmd
}

func newRoutesMatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "match <path>",
		Short: "Show which route a path resolves to",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := loadTable()
			if err != nil {
				return err
			}

			m, ok := table.Match(args[0])
			if !ok {
				return fmt.Errorf("no route matches %q", args[0])
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "route:    %s\n", m.Route.Name)
			fmt.Fprintf(out, "dispatch: %s\n", m.Dispatch())
			keys := make([]string, 0, len(m.Params))
			for k := range m.Params {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				fmt.Fprintf(out, "  %s=%s\n", k, m.Params[k])
			}
			return nil
		},
	}
}

func defaultsOf(r *routes.Route) string {
	d, ok := r.Options["defaults"].(map[string]any)
	if !ok {
		if ds, ok := r.Options["defaults"].(map[string]string); ok {
			d = make(map[string]any, len(ds))
			for k, v := range ds {
				d[k] = v
			}
		}
	}
	parts := make([]string, 0, 3)
	for _, k := range []string{routes.ParamModule, routes.ParamController, routes.ParamAction} {
		if v, ok := d[k]; ok {
			parts = append(parts, fmt.Sprint(v))
		} else {
			parts = append(parts, ":"+k)
		}
	}
	return strings.Join(parts, "/")
}
