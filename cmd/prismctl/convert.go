package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/NicoNex/prism/cube"
	"github.com/NicoNex/prism/hald"
)

type convertFlags struct {
	title string
	level int
}

func newConvertCmd() *cobra.Command {
	var f convertFlags

	cmd := &cobra.Command{
		Use:   "convert LUT OUTPUT",
		Short: "Convert a LUT between .cube and Hald PNG formats",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(args[0], args[1], f)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&f.title, "title", "t", "", "title for a generated .cube file")
	flags.IntVar(&f.level, "level", 0, "Hald level to assume when converting PNG -> cube (0 = detect)")

	return cmd
}

func runConvert(in, out string, f convertFlags) error {
	inExt, outExt := filepath.Ext(in), filepath.Ext(out)

	switch {
	case inExt == ".cube" && outExt == ".png":
		c, err := cube.LoadFile(in)
		if err != nil {
			return err
		}
		img, err := c.ToHaldImage()
		if err != nil {
			return err
		}
		outf, err := os.Create(out)
		if err != nil {
			return err
		}
		defer outf.Close()
		return hald.WriteTo(outf, img)

	case inExt == ".png" && outExt == ".cube":
		img, err := hald.LoadFile(in)
		if err != nil {
			return err
		}
		c, err := cube.FromHaldImage(img, f.level)
		if err != nil {
			return err
		}
		c.Title = f.title

		outf, err := os.Create(out)
		if err != nil {
			return err
		}
		defer outf.Close()
		_, err = c.WriteTo(outf)
		return err

	default:
		return fmt.Errorf("unsupported conversion from %q to %q", inExt, outExt)
	}
}
