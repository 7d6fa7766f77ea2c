package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/NicoNex/prism/hald"
)

func newDetectLevelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "detect-level LUT",
		Short: "Print the Hald CLUT level of a PNG LUT file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			img, err := hald.LoadFile(args[0])
			if err != nil {
				return err
			}
			level, err := hald.DetectLevel(img)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), level)
			return nil
		},
	}
}
