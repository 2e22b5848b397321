package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rdesantis/srvwrap/internal/hostsvc"
)

// NewRootCmd builds the srvwrap command line. The wrapper takes exactly two
// positional arguments: the name the service was installed under and the
// path to its configuration file.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "srvwrap <service-name> <config-file>",
		Short: "Run a console program under the host's service supervision",
		Long: `srvwrap wraps an arbitrary console program as a host service.

Starting the service launches the configured program. Stopping the service
delivers a graceful interrupt to the program; if it does not terminate
within the stop timeout it is forcibly killed. When the program exits on
its own the service stops cleanly, logging a nonzero exit code as an error.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return hostsvc.Run(args[0], args[1])
		},
	}

	root.SilenceUsage = true
	root.SilenceErrors = true

	return root
}

// Execute runs the CLI entrypoint.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
