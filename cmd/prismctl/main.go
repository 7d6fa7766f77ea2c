package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "prismctl",
		Short:         "Generate and apply palette-based Hald CLUTs",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newGenerateCmd(),
		newApplyCmd(),
		newDetectLevelCmd(),
		newConvertCmd(),
		newBlendCmd(),
	)

	return root
}
