package main

import (
	"fmt"
	"image"
	"os"

	"github.com/spf13/cobra"

	"github.com/NicoNex/prism/hald"
	"github.com/NicoNex/prism/palette"
	"github.com/NicoNex/prism/remap"
)

type generateFlags struct {
	paletteFile string
	colors      []string
	level       int
	algorithm   string
	lumFactor   float64
	preserve    bool
	nearest     int
	shape       float64
	power       float64
	mean        float64
	stdDev      float64
	iterations  int
	seed        uint64
	radius      float64
	output      string
}

func newGenerateCmd() *cobra.Command {
	var f generateFlags

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a Hald CLUT from a palette",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(f)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.paletteFile, "palette", "", "hex color list file, one #rrggbb per line")
	flags.StringArrayVar(&f.colors, "color", nil, "a single #rrggbb palette color (repeatable)")
	flags.IntVar(&f.level, "level", 10, "Hald CLUT level (2-16)")
	flags.StringVar(&f.algorithm, "algorithm", "nearest", "nearest|gaussian|shepard|linear|gaussian-sample|gaussian-blur")
	flags.Float64Var(&f.lumFactor, "lum-factor", 1.0, "OKLab L-axis weight")
	flags.BoolVar(&f.preserve, "preserve-luminosity", false, "retain each pixel's original luminosity")
	flags.IntVar(&f.nearest, "nearest", 16, "K for K-NN contributor search; 0 means all palette colors")
	flags.Float64Var(&f.shape, "shape", 128.0, "Gaussian RBF shape parameter")
	flags.Float64Var(&f.power, "power", 4.0, "Shepard RBF power parameter")
	flags.Float64Var(&f.mean, "mean", 0.0, "Gaussian-sampling perturbation mean")
	flags.Float64Var(&f.stdDev, "std-dev", 20.0, "Gaussian-sampling perturbation standard deviation")
	flags.IntVar(&f.iterations, "iterations", 512, "Gaussian-sampling iteration count")
	flags.Uint64Var(&f.seed, "seed", 42080085, "Gaussian-sampling PRNG seed")
	flags.Float64Var(&f.radius, "radius", 2.0, "Gaussian-blur kernel radius")
	flags.StringVarP(&f.output, "output", "o", "lut.png", "output Hald CLUT PNG path")

	return cmd
}

func runGenerate(f generateFlags) error {
	pal, err := loadPalette(f.paletteFile, f.colors)
	if err != nil {
		return fmt.Errorf("load palette: %w", err)
	}

	img, err := buildLut(pal, f)
	if err != nil {
		return fmt.Errorf("generate lut: %w", err)
	}

	out, err := os.Create(f.output)
	if err != nil {
		return err
	}
	defer out.Close()
	return hald.WriteTo(out, img)
}

func buildLut(pal palette.Palette, f generateFlags) (*image.RGBA, error) {
	switch f.algorithm {
	case "nearest":
		r, err := remap.NewNearestNeighborRemapper(pal, f.lumFactor, f.preserve)
		if err != nil {
			return nil, err
		}
		return remap.GenerateLut(r, f.level)

	case "gaussian":
		r, err := remap.NewGaussianRemapper(pal, f.lumFactor, f.preserve, f.nearest, f.shape)
		if err != nil {
			return nil, err
		}
		return remap.GenerateLut(r, f.level)

	case "shepard":
		r, err := remap.NewShepardRemapper(pal, f.lumFactor, f.preserve, f.nearest, f.power)
		if err != nil {
			return nil, err
		}
		return remap.GenerateLut(r, f.level)

	case "linear":
		r, err := remap.NewLinearRemapper(pal, f.lumFactor, f.preserve, f.nearest)
		if err != nil {
			return nil, err
		}
		return remap.GenerateLut(r, f.level)

	case "gaussian-sample":
		r, err := remap.NewGaussianSamplingRemapper(pal, f.lumFactor, f.preserve, f.mean, f.stdDev, f.iterations, f.seed)
		if err != nil {
			return nil, err
		}
		return remap.GenerateLut(r, f.level)

	case "gaussian-blur":
		r, err := remap.NewGaussianBlurRemapper(pal, f.lumFactor, f.preserve, f.radius)
		if err != nil {
			return nil, err
		}
		return r.GenerateLut(f.level)

	default:
		return nil, fmt.Errorf("unknown algorithm %q", f.algorithm)
	}
}
