package spectate

import (
	"fmt"

	qr "github.com/skip2/go-qrcode"
)

// QRCodePNG renders url as a 256px PNG.
func QRCodePNG(url string) ([]byte, error) {
	png, err := qr.Encode(url, qr.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("spectate: encode qr: %w", err)
	}
	return png, nil
}

// QRCodeTerminal renders url with half-block characters for a terminal.
func QRCodeTerminal(url string) (string, error) {
	code, err := qr.New(url, qr.Low)
	if err != nil {
		return "", fmt.Errorf("spectate: encode qr: %w", err)
	}
	return code.ToSmallString(false), nil
}
