package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/NicoNex/prism/cube"
	"github.com/NicoNex/prism/hald"
)

type blendFlags struct {
	output string
	title  string
}

func newBlendCmd() *cobra.Command {
	var f blendFlags

	cmd := &cobra.Command{
		Use:   "blend LUT1[:WEIGHT1] LUT2[:WEIGHT2]",
		Short: "Blend two LUTs (.cube or Hald PNG) together",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBlend(args[0], args[1], f)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&f.output, "output", "o", "", "output path (.cube LUTs print to stdout if omitted)")
	flags.StringVarP(&f.title, "title", "t", "", "title for a generated .cube file")

	return cmd
}

func runBlend(a, b string, f blendFlags) error {
	pathA, wA := pathAndIntensity(a)
	pathB, wB := pathAndIntensity(b)

	if filepath.Ext(pathA) == ".cube" || filepath.Ext(pathB) == ".cube" {
		return blendCube(pathA, pathB, wA, wB, f)
	}
	return blendHald(pathA, pathB, wA, wB, f)
}

func blendCube(pathA, pathB string, wA, wB float64, f blendFlags) error {
	c1, err := cube.LoadFile(pathA)
	if err != nil {
		return err
	}
	c2, err := cube.LoadFile(pathB)
	if err != nil {
		return err
	}
	c1.MustBlend(c2, wA, wB)
	c1.Title = f.title

	if f.output == "" {
		fmt.Println(c1)
		return nil
	}

	out, err := os.Create(f.output)
	if err != nil {
		return err
	}
	defer out.Close()
	_, err = c1.WriteTo(out)
	return err
}

func blendHald(pathA, pathB string, wA, wB float64, f blendFlags) error {
	img1, err := hald.LoadFile(pathA)
	if err != nil {
		return err
	}
	img2, err := hald.LoadFile(pathB)
	if err != nil {
		return err
	}

	blended, err := hald.Blend(img1, img2, wA, wB)
	if err != nil {
		return err
	}

	output := f.output
	if output == "" {
		output = "blend.png"
	}

	out, err := os.Create(output)
	if err != nil {
		return err
	}
	defer out.Close()
	return hald.WriteTo(out, blended)
}
