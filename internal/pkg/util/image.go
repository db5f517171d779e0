package util

import (
	"bytes"
	"errors"
	"image"
	"io"

	"github.com/disintegration/imaging"
)

// MaxImagePixels 解码前按文件头校验的像素上限
const MaxImagePixels = 40_000_000

var ErrInvalidImage = errors.New("invalid image")

// SquareThumbnail 解码任意格式图片，居中裁剪为 size*size 并编码为 JPEG
func SquareThumbnail(r io.Reader, size int) ([]byte, error) {
	// 先只读文件头拿到尺寸，读过的字节再拼回去完整解码
	var head bytes.Buffer
	cfg, _, err := image.DecodeConfig(io.TeeReader(r, &head))
	if err != nil {
		return nil, ErrInvalidImage
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || int64(cfg.Width)*int64(cfg.Height) > MaxImagePixels {
		return nil, ErrInvalidImage
	}

	src, err := imaging.Decode(io.MultiReader(&head, r), imaging.AutoOrientation(true))
	if err != nil {
		return nil, ErrInvalidImage
	}
	if src.Bounds().Empty() {
		return nil, ErrInvalidImage
	}

	var dst image.Image = imaging.Fill(src, size, size, imaging.Center, imaging.Lanczos)

	var buf bytes.Buffer
	if err = imaging.Encode(&buf, dst, imaging.JPEG, imaging.JPEGQuality(90)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
