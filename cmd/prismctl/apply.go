package main

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"os"
	"os/signal"
	"path/filepath"
	"regexp"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/NicoNex/prism/cancel"
	"github.com/NicoNex/prism/cube"
	"github.com/NicoNex/prism/hald"
	"github.com/NicoNex/prism/prismerr"
)

// applier is the common capability every on-disk LUT format offers the
// apply subcommand.
type applier interface {
	Apply(image.Image) *image.RGBA
	ApplyScaled(image.Image, float64) *image.RGBA
}

// haldApplier adapts a hald.Sampler (which corrects in place) to the
// applier interface cube.Cube already satisfies natively.
type haldApplier struct {
	sp   *hald.Sampler
	mode hald.Mode
}

func (h haldApplier) Apply(img image.Image) *image.RGBA {
	out := hald.ToRGBA(img)
	if out == img {
		// Correct a copy so the caller's image stays the original.
		out = &image.RGBA{Pix: append([]uint8(nil), out.Pix...), Stride: out.Stride, Rect: out.Rect}
	}
	hald.CorrectImage(out, h.sp, h.mode)
	return out
}

func (h haldApplier) ApplyScaled(img image.Image, intensity float64) *image.RGBA {
	corrected := h.Apply(img)
	if intensity >= 1 {
		return corrected
	}

	base := hald.ToRGBA(img)
	b := base.Bounds()
	out := image.NewRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			o := base.RGBAAt(x, y)
			c := corrected.RGBAAt(x, y)
			out.SetRGBA(x, y, color.RGBA{
				R: hald.RoundU8(float64(o.R)*(1-intensity) + float64(c.R)*intensity),
				G: hald.RoundU8(float64(o.G)*(1-intensity) + float64(c.G)*intensity),
				B: hald.RoundU8(float64(o.B)*(1-intensity) + float64(c.B)*intensity),
				A: o.A,
			})
		}
	}
	return out
}

func loadApplier(path string, mode hald.Mode) (applier, error) {
	if filepath.Ext(path) == ".cube" {
		return cube.LoadFile(path)
	}

	img, err := hald.LoadFile(path)
	if err != nil {
		return nil, err
	}
	sp, err := hald.BuildSampler(img, 0)
	if err != nil {
		return nil, err
	}
	return haldApplier{sp: sp, mode: mode}, nil
}

func parseMode(s string) (hald.Mode, error) {
	switch s {
	case "nearest":
		return hald.ModeNearest, nil
	case "trilinear", "":
		return hald.ModeTrilinear, nil
	case "tetrahedral":
		return hald.ModeTetrahedral, nil
	default:
		return 0, fmt.Errorf("unknown sampling mode %q", s)
	}
}

type applyFlags struct {
	output string
	mode   string
	text   string
	ctrlC  bool
}

func newApplyCmd() *cobra.Command {
	var f applyFlags

	cmd := &cobra.Command{
		Use:   "apply LUT[:INTENSITY] [IMAGE]",
		Short: "Apply a LUT (.cube or Hald PNG) to an image, or to #rrggbb tokens in a text file",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApply(args, f)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&f.output, "output", "o", "", "output path (default: IMAGE.prism.EXT)")
	flags.StringVar(&f.mode, "mode", "trilinear", "nearest|trilinear|tetrahedral (Hald PNG LUTs only)")
	flags.StringVar(&f.text, "text", "", "correct #rrggbb tokens embedded in this text file instead of an image")
	flags.BoolVar(&f.ctrlC, "ctrl-c", false, "install a SIGINT handler that cancels correction mid-flight (Hald PNG LUTs only)")

	return cmd
}

func runApply(args []string, f applyFlags) error {
	mode, err := parseMode(f.mode)
	if err != nil {
		return err
	}

	lutPath, intensity := pathAndIntensity(args[0])

	if f.text != "" {
		return applyText(lutPath, f.text, mode, f.output)
	}
	if len(args) < 2 {
		return fmt.Errorf("apply: IMAGE argument required unless --text is set")
	}
	return applyImage(lutPath, args[1], intensity, mode, f.output, f.ctrlC)
}

func applyImage(lutPath, imgPath string, intensity float64, mode hald.Mode, output string, ctrlC bool) error {
	a, err := loadApplier(lutPath, mode)
	if err != nil {
		return err
	}

	in, err := os.Open(imgPath)
	if err != nil {
		return err
	}
	defer in.Close()

	img, format, err := image.Decode(in)
	if err != nil {
		return err
	}

	if output == "" {
		ext := filepath.Ext(imgPath)
		output = fmt.Sprintf("%s.prism%s", imgPath[:len(imgPath)-len(ext)], ext)
	}

	var res *image.RGBA
	if ha, ok := a.(haldApplier); ok && ctrlC {
		res, err = applyCancellable(ha, img)
		if err != nil {
			return err
		}
	} else {
		res = a.ApplyScaled(img, intensity)
	}

	outf, err := os.Create(output)
	if err != nil {
		return err
	}
	defer outf.Close()
	return encodeImage(format, outf, res)
}

// applyCancellable demonstrates RemapImageCancellable's sibling on the
// hald side, hald.CorrectImageCancellable: SIGINT flips the token and the
// in-flight correction stops within one chunk of work.
func applyCancellable(ha haldApplier, img image.Image) (*image.RGBA, error) {
	tok := cancel.New()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sig)
	go func() {
		<-sig
		tok.Cancel()
	}()

	out := hald.ToRGBA(img)
	if !hald.CorrectImageCancellable(out, ha.sp, ha.mode, tok) {
		return nil, prismerr.ErrCancelled
	}
	return out, nil
}

var hexToken = regexp.MustCompile(`#[0-9a-fA-F]{6}`)

// applyText feeds embedded #rrggbb tokens in a text file through the
// Sampler, a thin optional collaborator surface over the same correction
// core used for images.
func applyText(lutPath, textPath string, mode hald.Mode, output string) error {
	img, err := hald.LoadFile(lutPath)
	if err != nil {
		return err
	}
	sp, err := hald.BuildSampler(img, 0)
	if err != nil {
		return err
	}

	in, err := os.Open(textPath)
	if err != nil {
		return err
	}
	defer in.Close()

	out := os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := scanner.Text()
		corrected := hexToken.ReplaceAllStringFunc(line, func(tok string) string {
			v, err := strconv.ParseUint(tok[1:], 16, 32)
			if err != nil {
				return tok
			}
			c := color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}
			corrected := sp.Sample(c, mode)
			return fmt.Sprintf("#%02x%02x%02x", corrected.R, corrected.G, corrected.B)
		})
		fmt.Fprintln(out, corrected)
	}
	return scanner.Err()
}
