package mandel

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image/color"
	"io"

	"golang.org/x/image/riff"
)

var (
	palType  = riff.FourCC{'P', 'A', 'L', ' '}
	dataType = riff.FourCC{'d', 'a', 't', 'a'}
)

// LoadGradientRIFF reads a Microsoft RIFF palette (.pal) and spreads its colors
// over evenly spaced bands, first color at t = 0 and last color just before t = 1.
func LoadGradientRIFF(r io.Reader) (Gradient, error) {
	formType, rd, err := riff.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("could not open RIFF stream: %w", err)
	} else if formType != palType {
		return nil, fmt.Errorf("unsupported RIFF content type: %s", string(formType[:]))
	}

	colors, err := readPalettes(rd, string(formType[:]))
	if err != nil {
		return nil, err
	}

	return gradientFromPalette(colors)
}

func gradientFromPalette(pal color.Palette) (Gradient, error) {
	switch len(pal) {
	case 0:
		return nil, fmt.Errorf("palette has no colors")
	case 1:
		c := color.RGBAModel.Convert(pal[0]).(color.RGBA)
		return NewGradient(Band{Lo: 0, Hi: 1, From: c, To: c})
	}

	n := len(pal) - 1
	bands := make([]Band, n)
	for i := range n {
		bands[i] = Band{
			Lo:   float64(i) / float64(n),
			Hi:   float64(i+1) / float64(n),
			From: color.RGBAModel.Convert(pal[i]).(color.RGBA),
			To:   color.RGBAModel.Convert(pal[i+1]).(color.RGBA),
		}
	}
	return NewGradient(bands...)
}

func readPalettes(r *riff.Reader, ident string) (color.Palette, error) {
	var res color.Palette

	for i := 0; ; i++ {
		id, size, data, err := r.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return res, nil
			}
			return nil, fmt.Errorf("could not read chunk %q#%d: %w", ident, i, err)
		}

		switch id {
		case riff.LIST:
			listType, list, err := riff.NewListReader(size, data)
			if err != nil {
				return nil, fmt.Errorf("could not read list from chunk %q#%d: %w", ident, i, err)
			} else if listType != palType {
				return nil, fmt.Errorf("chunk %q#%d unsupported type: %s", ident, i, string(listType[:]))
			}

			pal, err := readPalettes(list, fmt.Sprintf("%s%d.%s", ident, i, listType[:]))
			if err != nil {
				return nil, err
			}
			res = append(res, pal...)
		case dataType:
			pal, err := readPalette(data, fmt.Sprintf("%s%d", ident, i))
			if err != nil {
				return nil, err
			}
			res = append(res, pal...)
		default:
			return nil, fmt.Errorf("unsupported chunk type in %q#%d: %s", ident, i, string(id[:]))
		}
	}
}

func readPalette(r io.Reader, ident string) (color.Palette, error) {
	buf := make([]byte, 2)

	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, fmt.Errorf("could not read version from chunk %s: %w", ident, err)
	}

	ver := binary.BigEndian.Uint16(buf)
	if ver != 3 {
		return nil, fmt.Errorf("unsupported palette version in chunk %s: %d", ident, ver)
	}

	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, fmt.Errorf("could not read number of entries from chunk %s: %w", ident, err)
	}

	count := binary.LittleEndian.Uint16(buf)
	res := make(color.Palette, count)
	buf4 := make([]byte, 4)
	for i := range count {
		if _, err := io.ReadFull(r, buf4); err != nil {
			return nil, fmt.Errorf("could not read color %d/%d from chunk %s: %w", i, count, ident, err)
		}

		// the fourth byte holds PALETTEENTRY flags, not alpha
		res[i] = color.RGBA{R: buf4[0], G: buf4[1], B: buf4[2], A: 255}
	}

	return res, nil
}
