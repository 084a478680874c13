package imaging

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"

	"github.com/vidprocc/vidpro/ddd/domain/port"
)

// jpegQuality 静态图统一输出质量
const jpegQuality = 80

// Engine 基于纯Go图像库的静态图处理
type Engine struct{}

// NewEngine 创建图像引擎
func NewEngine() port.ImageEngine {
	return &Engine{}
}

// Resize 缩放图片，width或height为0时保持比例。
func (e *Engine) Resize(src, dst string, width, height int) error {
	img, err := imaging.Open(src)
	if err != nil {
		return fmt.Errorf("open image %s: %w", src, err)
	}
	if width > 0 || height > 0 {
		img = imaging.Resize(img, width, height, imaging.Lanczos)
	}
	if err := imaging.Save(img, dst, imaging.JPEGQuality(jpegQuality)); err != nil {
		return fmt.Errorf("save image %s: %w", dst, err)
	}
	return nil
}

// Composite 按cols×rows网格拼接图块，画布尺寸取首张图块的整数倍。
// 多余的图块忽略，缺位的格子保持黑色。
func (e *Engine) Composite(tiles []string, cols, rows int, dst string) (int, int, error) {
	if len(tiles) == 0 {
		return 0, 0, fmt.Errorf("no tiles to composite")
	}
	first, err := imaging.Open(tiles[0])
	if err != nil {
		return 0, 0, fmt.Errorf("open tile %s: %w", tiles[0], err)
	}
	tileW := first.Bounds().Dx()
	tileH := first.Bounds().Dy()
	canvasW := tileW * cols
	canvasH := tileH * rows

	canvas := imaging.New(canvasW, canvasH, color.Black)
	for i, path := range tiles {
		if i >= cols*rows {
			break
		}
		var tile image.Image
		if i == 0 {
			tile = first
		} else {
			tile, err = imaging.Open(path)
			if err != nil {
				return 0, 0, fmt.Errorf("open tile %s: %w", path, err)
			}
		}
		x := (i % cols) * tileW
		y := (i / cols) * tileH
		canvas = imaging.Paste(canvas, tile, image.Pt(x, y))
	}

	if err := imaging.Save(canvas, dst, imaging.JPEGQuality(jpegQuality)); err != nil {
		return 0, 0, fmt.Errorf("save mosaic %s: %w", dst, err)
	}
	return canvasW, canvasH, nil
}
