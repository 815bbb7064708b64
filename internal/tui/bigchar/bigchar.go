// Package bigchar renders Hangul words as large block art using half-block
// characters.
package bigchar

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"os"
	"strings"
	"sync"

	"github.com/mattn/go-runewidth"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// fontPaths lists system fonts with Hangul coverage.
var fontPaths = []string{
	// macOS
	"/System/Library/Fonts/AppleSDGothicNeo.ttc",
	"/System/Library/Fonts/Supplemental/AppleGothic.ttf",
	"/Library/Fonts/Arial Unicode.ttf",
	// Linux
	"/usr/share/fonts/opentype/noto/NotoSansCJK-Regular.ttc",
	"/usr/share/fonts/noto-cjk/NotoSansCJK-Regular.ttc",
	"/usr/share/fonts/google-noto-cjk/NotoSansCJK-Regular.ttc",
	"/usr/share/fonts/truetype/nanum/NanumGothic.ttf",
	"/usr/share/fonts/nanum/NanumGothic.ttf",
	"/usr/share/fonts/truetype/unfonts-core/UnDotum.ttf",
	// Windows
	"C:\\Windows\\Fonts\\malgun.ttf",
	"C:\\Windows\\Fonts\\gulim.ttc",
}

const faceSize = 64

var (
	loadOnce   sync.Once
	loadedFace font.Face
)

func face() font.Face {
	loadOnce.Do(func() {
		if path := os.Getenv("KWORD_FONT"); path != "" {
			if f, err := LoadFace(path); err == nil {
				loadedFace = f
				return
			}
		}
		for _, path := range fontPaths {
			if f, err := LoadFace(path); err == nil {
				loadedFace = f
				return
			}
		}
	})
	return loadedFace
}

// LoadFace parses a TrueType/OpenType font or the first font of a collection.
func LoadFace(path string) (font.Face, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	opts := &opentype.FaceOptions{Size: faceSize, DPI: 72}

	if coll, err := opentype.ParseCollection(data); err == nil && coll.NumFonts() > 0 {
		fnt, err := coll.Font(0)
		if err != nil {
			return nil, fmt.Errorf("reading font collection: %w", err)
		}
		return opentype.NewFace(fnt, opts)
	}

	fnt, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing font: %w", err)
	}
	return opentype.NewFace(fnt, opts)
}

// IsAvailable reports whether a Hangul-capable font was found.
func IsAvailable() bool {
	return face() != nil
}

// RenderRune renders r into a block of cols x rows terminal cells.
func RenderRune(f font.Face, r rune, cols, rows int) string {
	if f == nil || cols <= 0 || rows <= 0 {
		return ""
	}

	bounds, _, ok := f.GlyphBounds(r)
	if !ok {
		return ""
	}
	glyphWidth := (bounds.Max.X - bounds.Min.X).Ceil()
	glyphHeight := (bounds.Max.Y - bounds.Min.Y).Ceil()

	padding := 4
	srcWidth := max(glyphWidth+padding*2, faceSize)
	srcHeight := max(glyphHeight+padding*2, faceSize)

	src := image.NewGray(image.Rect(0, 0, srcWidth, srcHeight))
	draw.Draw(src, src.Bounds(), &image.Uniform{color.Black}, image.Point{}, draw.Src)

	x := (srcWidth-glyphWidth)/2 - bounds.Min.X.Floor()
	y := srcHeight - padding - bounds.Max.Y.Ceil()

	d := &font.Drawer{
		Dst:  src,
		Src:  image.White,
		Face: f,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(string(r))

	// two pixel rows per cell
	return toHalfBlocks(scaleDown(src, cols, rows*2), cols, rows)
}

// RenderWord renders each rune of word side by side. Wide runes get cols
// cells, narrow runes half as many. Spaces become a gap.
func RenderWord(f font.Face, word string, cols, rows int) string {
	if f == nil || word == "" {
		return ""
	}

	lines := make([]strings.Builder, rows)
	for i, r := range []rune(word) {
		w := cols
		if runewidth.RuneWidth(r) < 2 {
			w = cols / 2
		}

		var block []string
		if r == ' ' {
			block = blank(w, rows)
		} else {
			rendered := RenderRune(f, r, w, rows)
			if rendered == "" {
				return ""
			}
			block = strings.Split(rendered, "\n")
		}

		for row := 0; row < rows; row++ {
			if i > 0 {
				lines[row].WriteByte(' ')
			}
			lines[row].WriteString(block[row])
		}
	}

	out := make([]string, rows)
	for i := range lines {
		out[i] = lines[i].String()
	}
	return strings.Join(out, "\n")
}

func blank(cols, rows int) []string {
	out := make([]string, rows)
	for i := range out {
		out[i] = strings.Repeat(" ", cols)
	}
	return out
}

// scaleDown scales a grayscale image using area averaging
func scaleDown(src *image.Gray, dstWidth, dstHeight int) *image.Gray {
	srcWidth := src.Bounds().Max.X
	srcHeight := src.Bounds().Max.Y

	dst := image.NewGray(image.Rect(0, 0, dstWidth, dstHeight))

	xRatio := float64(srcWidth) / float64(dstWidth)
	yRatio := float64(srcHeight) / float64(dstHeight)

	for dy := 0; dy < dstHeight; dy++ {
		for dx := 0; dx < dstWidth; dx++ {
			sx1 := int(float64(dx) * xRatio)
			sy1 := int(float64(dy) * yRatio)
			sx2 := min(int(float64(dx+1)*xRatio), srcWidth)
			sy2 := min(int(float64(dy+1)*yRatio), srcHeight)

			var sum, count int
			for sy := sy1; sy < sy2; sy++ {
				for sx := sx1; sx < sx2; sx++ {
					sum += int(src.GrayAt(sx, sy).Y)
					count++
				}
			}
			if count > 0 {
				dst.SetGray(dx, dy, color.Gray{Y: uint8(sum / count)})
			}
		}
	}

	return dst
}

const threshold = 40

// toHalfBlocks converts a grayscale image to half-block art
func toHalfBlocks(img *image.Gray, cols, rows int) string {
	var b strings.Builder

	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			top := brightness(img, col, row*2) > threshold
			bottom := brightness(img, col, row*2+1) > threshold

			switch {
			case top && bottom:
				b.WriteRune('█')
			case top:
				b.WriteRune('▀')
			case bottom:
				b.WriteRune('▄')
			default:
				b.WriteRune(' ')
			}
		}
		if row < rows-1 {
			b.WriteRune('\n')
		}
	}

	return b.String()
}

func brightness(img *image.Gray, x, y int) uint8 {
	if x < 0 || y < 0 || x >= img.Bounds().Max.X || y >= img.Bounds().Max.Y {
		return 0
	}
	return img.GrayAt(x, y).Y
}

type cacheKey struct {
	word       string
	cols, rows int
}

var (
	cacheMu sync.Mutex
	cache   = make(map[cacheKey]string)
)

// GetCached renders word with the system font, caching the result. It
// returns "" when no font is available or a rune has no glyph.
func GetCached(word string, cols, rows int) string {
	f := face()
	if f == nil {
		return ""
	}

	key := cacheKey{word, cols, rows}
	cacheMu.Lock()
	defer cacheMu.Unlock()
	if cached, ok := cache[key]; ok {
		return cached
	}

	rendered := RenderWord(f, word, cols, rows)
	cache[key] = rendered
	return rendered
}
