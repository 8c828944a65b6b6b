// Command homepage serves the homepage site.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	apperrors "github.com/vango-dev/homepage/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		apperrors.Fprint(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "homepage",
		Short: "Server-rendered homepage with live updates",
		Long: `homepage renders the site on the server and keeps each open tab
live over a WebSocket: clicks and client-side navigation are handled
on the server and sent back as DOM patches.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringP("config", "c", "homepage.yaml", "Path to the configuration file")

	root.AddCommand(
		serveCmd(),
		renderCmd(),
		routesCmd(),
		versionCmd(),
	)
	return root
}

// success prints a success message.
func success(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}
