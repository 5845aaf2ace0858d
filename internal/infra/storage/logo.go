package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/chai2010/webp"
	"github.com/google/uuid"
	"golang.org/x/image/draw"
)

const (
	LogoMaxSide   = 512
	logoMaxBytes  = 5 << 20
	logoQuality   = 90
	logoKeyPrefix = "branding/logo-"
)

var ErrInvalidImage = errors.New("invalid image")

// ProcessLogo decodifica png/jpeg/webp, reduz para caber em maxSide e reencoda em webp.
func ProcessLogo(r io.Reader, maxSide int) ([]byte, error) {
	raw, err := io.ReadAll(io.LimitReader(r, logoMaxBytes+1))
	if err != nil {
		return nil, err
	}
	if len(raw) > logoMaxBytes {
		return nil, fmt.Errorf("%w: larger than %d bytes", ErrInvalidImage, logoMaxBytes)
	}

	src, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}

	dst := fit(src, maxSide)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, dst, &webp.Options{Quality: logoQuality}); err != nil {
		return nil, fmt.Errorf("encode webp: %w", err)
	}
	return buf.Bytes(), nil
}

func fit(src image.Image, maxSide int) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxSide <= 0 || (w <= maxSide && h <= maxSide) {
		return src
	}

	if w >= h {
		h = h * maxSide / w
		w = maxSide
	} else {
		w = w * maxSide / h
		h = maxSide
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}

type LogoStore struct {
	uploader Uploader
}

func NewLogoStore(u Uploader) *LogoStore {
	return &LogoStore{uploader: u}
}

// Save processa a imagem e devolve a URL pública do webp.
func (s *LogoStore) Save(ctx context.Context, r io.Reader) (string, error) {
	data, err := ProcessLogo(r, LogoMaxSide)
	if err != nil {
		return "", err
	}
	key := logoKeyPrefix + uuid.NewString() + ".webp"
	return s.uploader.Upload(ctx, key, "image/webp", data)
}
