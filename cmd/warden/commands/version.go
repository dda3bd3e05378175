package commands

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/wardenhq/warden/internal/version"
)

// NewVersionCmd creates the version command
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version of Warden",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("warden %s %s/%s\n", version.Version, runtime.GOOS, runtime.GOARCH)
		},
	}
}
