package main

import (
	"fmt"
	"reflect"
	"runtime"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vango-dev/homepage/app"
	apperrors "github.com/vango-dev/homepage/internal/errors"
	"github.com/vango-dev/homepage/pkg/router"
)

func routesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "List the route table and check it for shadowed routes",
		RunE: func(cmd *cobra.Command, args []string) error {
			routes := app.Routes()

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "#\tPATTERN\tPAGE")
			for i, r := range routes.All() {
				fmt.Fprintf(tw, "%d\t%s\t%s\n", i, r.Pattern(), pageName(r.Page))
			}
			tw.Flush()

			if err := routes.Validate(); err != nil {
				return apperrors.New("E002").Wrap(err)
			}
			success(cmd.OutOrStdout(), "%d routes, none shadowed", len(routes.All()))
			return nil
		},
	}
}

// pageName returns the unqualified function name of a page handler.
func pageName(page router.PageHandler) string {
	fn := runtime.FuncForPC(reflect.ValueOf(page).Pointer())
	if fn == nil {
		return "?"
	}
	name := fn.Name()
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	return name
}
