// Package qr writes QR images that encode player page URLs.
package qr

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	qrcode "github.com/skip2/go-qrcode"
)

// WriteFile encodes url into a size x size PNG at path. High error
// correction keeps the code scannable from a phone camera at an angle.
func WriteFile(url, path string, size int) error {
	if err := qrcode.WriteFile(url, qrcode.High, size, path); err != nil {
		return errors.Wrapf(err, "failed to write qr code to %s", path)
	}
	return nil
}

// FileName returns the QR image name for a video file name.
func FileName(videoName string) string {
	stem := strings.TrimSuffix(videoName, filepath.Ext(videoName))
	return fmt.Sprintf("%s_qr.png", stem)
}
