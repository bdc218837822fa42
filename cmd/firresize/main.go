// Command firresize is a minimal example CLI built on package fir: decode
// an image (png/jpeg/webp), resize it to fit within a bounding box, and
// write it back out as png.
//
// Its shape mirrors naisuuuu-mangaconv's cmd/mangaconv: stdlib flag for
// options, a small fixed-size worker pool draining a channel of targets,
// one goroutine per in-flight file.
package main

import (
	"flag"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"github.com/naisuuuu/fir"
	"github.com/naisuuuu/fir/filter"
	"github.com/naisuuuu/fir/pixel"
)

var (
	version = "dev"
	date    = "unknown"
)

func main() {
	width := flag.Int("width", 1920, "Maximum width of the output image.")
	height := flag.Int("height", 1920, "Maximum height of the output image.")
	filterName := flag.String("filter", "lanczos3", "Resampling filter: box, bilinear, catmullrom, mitchell, lanczos3.")
	outdir := flag.String("outdir", "", "Path to output directory (default: alongside each input).")
	ver := flag.Bool("version", false, "Print version information.")
	workers := flag.Int("workers", 2, "Number of concurrent conversion workers.")

	flag.Parse()

	if *ver {
		fmt.Printf("firresize version %s, built at %s\n", version, date)
	}

	ft, err := parseFilter(*filterName)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if *outdir != "" {
		if err := os.MkdirAll(*outdir, 0o755); err != nil {
			fmt.Fprintf(os.Stderr, "could not create outdir: %v\n", err)
			os.Exit(1)
		}
	}

	targets := make(chan target, len(flag.Args()))
	go func() {
		defer close(targets)
		for _, in := range flag.Args() {
			out := filepath.Dir(in)
			if *outdir != "" {
				out = *outdir
			}
			out = filepath.Join(out, outName(in))
			targets <- target{in: in, out: out}
		}
	}()

	cfg := convertConfig{maxWidth: *width, maxHeight: *height, filter: ft}

	var wg sync.WaitGroup
	failed := false
	var mu sync.Mutex
	for i := 0; i < *workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for t := range targets {
				if err := convertFile(t, cfg); err != nil {
					mu.Lock()
					failed = true
					mu.Unlock()
					fmt.Fprintf(os.Stderr, "failed to convert %s: %v\n", filepath.Base(t.in), err)
					continue
				}
				fmt.Println("converted", filepath.Base(t.in))
			}
		}()
	}
	wg.Wait()

	if failed {
		os.Exit(1)
	}
}

type target struct {
	in, out string
}

type convertConfig struct {
	maxWidth, maxHeight int
	filter              filter.Type
}

func outName(in string) string {
	return strings.TrimSuffix(filepath.Base(in), filepath.Ext(in)) + ".resized.png"
}

func parseFilter(name string) (filter.Type, error) {
	switch strings.ToLower(name) {
	case "box":
		return filter.Box, nil
	case "bilinear":
		return filter.Bilinear, nil
	case "catmullrom":
		return filter.CatmullRom, nil
	case "mitchell":
		return filter.Mitchell, nil
	case "lanczos3":
		return filter.Lanczos3, nil
	default:
		return 0, fmt.Errorf("unknown filter %q", name)
	}
}

func convertFile(t target, cfg convertConfig) error {
	f, err := os.Open(t.in)
	if err != nil {
		return err
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return err
	}

	srcImg, err := fromGoImage(src)
	if err != nil {
		return err
	}

	dstW, dstH := fitBounds(srcImg.Width(), srcImg.Height(), cfg.maxWidth, cfg.maxHeight)
	dstImg, err := pixel.NewImage(dstW, dstH, pixel.TypeU8x4)
	if err != nil {
		return err
	}

	r := fir.New(fir.Auto(cfg.filter))
	opts := fir.DefaultOptions(pixel.TypeU8x4)
	if err := r.Resize(srcImg, dstImg, opts); err != nil {
		return err
	}

	out, err := os.Create(t.out)
	if err != nil {
		return err
	}
	defer out.Close()
	return png.Encode(out, toGoImage(dstImg))
}

// fitBounds scales (w, h) down to fit within (maxW, maxH) preserving
// aspect ratio, never upscaling. Returns (w, h) unchanged if it already
// fits.
func fitBounds(w, h, maxW, maxH int) (int, int) {
	if w <= maxW && h <= maxH {
		return w, h
	}
	scaleW := float64(maxW) / float64(w)
	scaleH := float64(maxH) / float64(h)
	scale := scaleW
	if scaleH < scale {
		scale = scaleH
	}
	dw := int(float64(w) * scale)
	dh := int(float64(h) * scale)
	if dw < 1 {
		dw = 1
	}
	if dh < 1 {
		dh = 1
	}
	return dw, dh
}

// fromGoImage normalizes an arbitrary image.Image into a fir U8x4 image
// via x/image/draw, which (like the stdlib image/draw it generalizes)
// accepts any src implementing image.Image regardless of its concrete
// color model.
func fromGoImage(src image.Image) (*pixel.Image, error) {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	nrgba := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(nrgba, nrgba.Bounds(), src, b.Min, draw.Src)

	img, err := pixel.NewImage(w, h, pixel.TypeU8x4)
	if err != nil {
		return nil, err
	}
	v, err := pixel.NewViewMut[pixel.U8x4](img)
	if err != nil {
		return nil, err
	}
	for y := 0; y < h; y++ {
		row := v.RowMut(y)
		off := y * nrgba.Stride
		for x := 0; x < w; x++ {
			i := off + x*4
			row[x] = pixel.U8x4{
				R: nrgba.Pix[i+0],
				G: nrgba.Pix[i+1],
				B: nrgba.Pix[i+2],
				A: nrgba.Pix[i+3],
			}
		}
	}
	return img, nil
}

func toGoImage(img *pixel.Image) *image.NRGBA {
	w, h := img.Width(), img.Height()
	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	v, err := pixel.NewView[pixel.U8x4](img)
	if err != nil {
		panic(err)
	}
	for y := 0; y < h; y++ {
		row := v.Row(y)
		off := y * out.Stride
		for x := 0; x < w; x++ {
			p := row[x]
			i := off + x*4
			out.Pix[i+0] = p.R
			out.Pix[i+1] = p.G
			out.Pix[i+2] = p.B
			out.Pix[i+3] = p.A
		}
	}
	return out
}
