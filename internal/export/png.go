// Package export turns a flattened drawing into files and payloads for
// hand-off: PNG, printable PDF and base64 for the enhancement service.
package export

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"io"
	"strings"
)

// PNG encodes img losslessly.
func PNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// Base64PNG returns img as a standard base64 PNG, the form the enhancement
// service accepts.
func Base64PNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := PNG(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// DecodeBase64PNG is the inverse of Base64PNG. A data URL prefix is accepted.
func DecodeBase64PNG(s string) (image.Image, error) {
	if strings.HasPrefix(s, "data:") {
		_, s, _ = strings.Cut(s, ",")
	}
	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("decode base64: %w", err)
	}
	img, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decode png: %w", err)
	}
	return img, nil
}
