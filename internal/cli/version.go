package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is the quilt release, overridable at build time with
// -ldflags "-X github.com/mesh-intelligence/quiltboard/internal/cli.Version=...".
var Version = "0.1.0"

const modulePath = "github.com/mesh-intelligence/quiltboard"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the quilt version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "quilt v%s\nmodule: %s\n", Version, modulePath)
			return nil
		},
	}
}
