package otpx

import (
	"encoding/base64"
	"errors"
	"strings"

	skipqrcode "github.com/skip2/go-qrcode"
)

var (
	ErrEmptyContent = errors.New("otpx: qr content cannot be empty")
	ErrQRCode       = errors.New("otpx: failed to generate QR code")
)

const defaultQRSize = 256

// QRCodePNG renders content (usually an otpauth:// URL) as a PNG.
func QRCodePNG(content string, size int) ([]byte, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}
	if size <= 0 {
		size = defaultQRSize
	}
	png, err := skipqrcode.Encode(content, skipqrcode.Medium, size)
	if err != nil {
		return nil, errors.Join(ErrQRCode, err)
	}
	return png, nil
}

// QRCodeDataURI renders content as a data:image/png;base64 URI suitable for
// an <img src>.
func QRCodeDataURI(content string, size int) (string, error) {
	png, err := QRCodePNG(content, size)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
