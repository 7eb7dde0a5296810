/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package frame converts images into fixed-palette text art for display in
// the terminal. Frames are rendered once, at script compile time.
package frame

import (
	"fmt"
	"image"
	"os"
	"strings"

	xdraw "golang.org/x/image/draw"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// palette orders intensity characters dark to light.
const palette = " .:-=+*#%@"

// Render decodes the image at path and samples it down by scale into a
// block of palette characters, one row per line. Terminal cells are roughly
// twice as tall as wide, so vertical sampling is doubled. With invert set
// the palette is read backwards, for light-on-dark sources.
func Render(path string, scale int, invert bool) (string, error) {
	if scale < 1 {
		return "", fmt.Errorf("scale must be at least 1, got %d", scale)
	}
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	w := bounds.Dx() / scale
	h := bounds.Dy() / (scale * 2)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	gray := image.NewGray(image.Rect(0, 0, w, h))
	xdraw.ApproxBiLinear.Scale(gray, gray.Bounds(), img, bounds, xdraw.Src, nil)

	var b strings.Builder
	b.Grow((w + 1) * h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			idx := int(gray.GrayAt(x, y).Y) * (len(palette) - 1) / 255
			if invert {
				idx = len(palette) - 1 - idx
			}
			b.WriteByte(palette[idx])
		}
		if y < h-1 {
			b.WriteByte('\n')
		}
	}
	return b.String(), nil
}
