package generators

import (
	"github.com/pkg/errors"
	qrcode "github.com/skip2/go-qrcode"
)

const qrImageSize = 256

// QR renders data as a PNG QR code.
func QR(data string) ([]byte, error) {
	png, err := qrcode.Encode(data, qrcode.Medium, qrImageSize)
	if err != nil {
		return nil, errors.Wrap(err, "[QR] qrcode.Encode")
	}
	return png, nil
}
