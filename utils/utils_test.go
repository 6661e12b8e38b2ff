package utils

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"
)

// Smallest valid GIF: 2x1 pixels
var smallGif = []byte{
	0x47, 0x49, 0x46, 0x38, 0x39, 0x61, 0x02, 0x00,
	0x01, 0x00, 0x80, 0x00, 0x00, 0x00, 0x00, 0x00,
	0xFF, 0xFF, 0xFF, 0x21, 0xF9, 0x04, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x2C, 0x00, 0x00, 0x00, 0x00,
	0x02, 0x00, 0x01, 0x00, 0x00, 0x02, 0x02, 0x0C,
	0x0A, 0x00, 0x3B,
}

func TestCheckImage(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		want    string
		wantErr error
	}{
		{"gif", smallGif, "gif", nil},
		{"text", []byte("definitely not an image"), "", ErrNotAnImage},
		{"empty", nil, "", ErrNotAnImage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CheckImage(bytes.NewReader(tt.data))
			if got != tt.want || !errors.Is(err, tt.wantErr) {
				t.Errorf("CheckImage() = %q, %v, want %q, %v", got, err, tt.want, tt.wantErr)
			}
		})
	}
}

func TestCreateThumb(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 400, 200))
	for x := 0; x < 400; x++ {
		img.Set(x, x%200, color.RGBA{R: 255, A: 255})
	}
	var src bytes.Buffer
	if err := png.Encode(&src, img); err != nil {
		t.Fatal(err)
	}
	var thumb bytes.Buffer
	info, err := CreateThumb(100, &src, &thumb)
	if err != nil {
		t.Fatal(err)
	}
	if info.OldX != 400 || info.OldY != 200 || info.NewX != 100 || info.NewY != 50 {
		t.Errorf("CreateThumb() = %+v", info)
	}
	if info.ThumbSize != int64(thumb.Len()) {
		t.Errorf("ThumbSize = %d, written %d", info.ThumbSize, thumb.Len())
	}
	if _, err = jpeg.Decode(&thumb); err != nil {
		t.Errorf("thumb is not a JPEG: %v", err)
	}
	if _, err = CreateThumb(100, strings.NewReader("nope"), &thumb); err == nil {
		t.Error("CreateThumb() accepted garbage")
	}
}
