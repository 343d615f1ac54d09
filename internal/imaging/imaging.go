// Package imaging turns image files into the data-URI strings the
// backend expects. Input bytes are validated by sniffing, and oversized
// photos are downscaled and re-encoded before upload so phone camera
// shots do not balloon the JSON payload.
package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png" // register PNG decoding
	"net/http"
	"os"

	"golang.org/x/image/draw"
)

// MaxDimension is the largest width or height sent to the backend.
const MaxDimension = 1024

// JPEGQuality is the re-encode quality for downscaled images.
const JPEGQuality = 85

// allowedMIME lists the accepted input types, by sniffed value.
var allowedMIME = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
}

// EncodeFile reads the image at path and returns it as a data URI.
func EncodeFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return Encode(data)
}

// Encode validates raw image bytes and returns a data URI. Images within
// MaxDimension are passed through untouched; larger ones are downscaled
// and re-encoded as JPEG.
func Encode(data []byte) (string, error) {
	// Sniff the real MIME type from bytes, never the file extension.
	mime := http.DetectContentType(data)
	if !allowedMIME[mime] {
		return "", fmt.Errorf("unsupported image format: %s (only JPEG and PNG accepted)", mime)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("decoding image header: %w", err)
	}

	if cfg.Width > MaxDimension || cfg.Height > MaxDimension {
		img, _, err := image.Decode(bytes.NewReader(data))
		if err != nil {
			return "", fmt.Errorf("decoding image: %w", err)
		}
		var buf bytes.Buffer
		if err := jpeg.Encode(&buf, downscale(img), &jpeg.Options{Quality: JPEGQuality}); err != nil {
			return "", fmt.Errorf("encoding JPEG: %w", err)
		}
		data = buf.Bytes()
		mime = "image/jpeg"
	}

	return dataURI(mime, data), nil
}

func dataURI(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// downscale fits img inside MaxDimension preserving aspect ratio.
func downscale(img image.Image) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	scale := float64(MaxDimension) / float64(max(w, h))
	nw, nh := max(int(float64(w)*scale), 1), max(int(float64(h)*scale), 1)

	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}
