package qrcode

import (
	"errors"
	"os"
	"strings"

	skipqrcode "github.com/skip2/go-qrcode"
)

var (
	ErrEmptyContent           = errors.New("qrcode: nothing to encode")
	ErrFailedToGenerateQRCode = errors.New("qrcode: encode failed")
	ErrFailedToWriteFile      = errors.New("qrcode: cannot write png")
)

// DefaultSize is the size in pixels used when no size is specified.
const DefaultSize = 256

// Generate creates a PNG QR code with medium error correction.
func Generate(content string, size int) ([]byte, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}
	if size <= 0 {
		size = DefaultSize
	}
	png, err := skipqrcode.Encode(content, skipqrcode.Medium, size)
	if err != nil {
		return nil, errors.Join(ErrFailedToGenerateQRCode, err)
	}
	return png, nil
}

// WriteFile generates a PNG QR code and writes it to path with mode 0600.
func WriteFile(content string, size int, path string) error {
	png, err := Generate(content, size)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, png, 0o600); err != nil {
		return errors.Join(ErrFailedToWriteFile, err)
	}
	return nil
}

// Terminal renders content as a QR code drawn with Unicode block characters.
// It returns an empty string when the content cannot be encoded.
func Terminal(content string) string {
	if strings.TrimSpace(content) == "" {
		return ""
	}
	q, err := skipqrcode.New(content, skipqrcode.Medium)
	if err != nil {
		return ""
	}
	return q.ToSmallString(false)
}
