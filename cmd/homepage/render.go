package main

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
)

func renderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render <path>",
		Short: "Render one page to stdout",
		Long: `Render the page at <path> exactly as the server would for a first
request, print the HTML to stdout and the response status to stderr.

Examples:
  homepage render /
  homepage render /missing`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			srv, err := newServer(cfg, newLogger(cfg))
			if err != nil {
				return err
			}

			target := args[0]
			if target == "" || target[0] != '/' {
				target = "/" + target
			}
			req, err := http.NewRequestWithContext(cmd.Context(), http.MethodGet, target, nil)
			if err != nil {
				return err
			}

			page, err := srv.Render(req)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "status: %d %s\n", page.Status, http.StatusText(page.Status))
			_, err = cmd.OutOrStdout().Write(page.Body)
			return err
		},
	}
	return cmd
}
