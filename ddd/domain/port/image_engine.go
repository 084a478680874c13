package port

// ImageEngine 静态图片处理端口
type ImageEngine interface {
	// Resize 缩放图片。width或height为0时按比例推算。
	Resize(src, dst string, width, height int) error
	// Composite 将图块按cols×rows网格拼接成一张图，返回画布尺寸。
	Composite(tiles []string, cols, rows int, dst string) (width, height int, err error)
}
