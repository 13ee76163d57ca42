package qrgen

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	skipqrcode "github.com/skip2/go-qrcode"

	"github.com/pchouse/atqr/pkg/fiscalqr"
)

var (
	ErrEmptyPayload   = errors.New("qrgen: payload cannot be empty")
	ErrInvalidPayload = errors.New("qrgen: payload does not tokenize")
	ErrEncodingFailed = errors.New("qrgen: failed to encode")
)

// defaultSize in pixels when the caller passes a non-positive size.
const defaultSize = 256

// Encode renders a payload as a PNG QR image. The tax authority's
// billing rules ask for medium error correction, which is also the
// library default we keep here.
func Encode(payload string, size int) ([]byte, error) {
	if strings.TrimSpace(payload) == "" {
		return nil, ErrEmptyPayload
	}
	if size <= 0 {
		size = defaultSize
	}
	png, err := skipqrcode.Encode(payload, skipqrcode.Medium, size)
	if err != nil {
		return nil, errors.Join(ErrEncodingFailed, err)
	}
	return png, nil
}

// EncodeDocument renders a payload after checking that it tokenizes as
// a fiscal QR payload; field-level validity is not required, only that
// the structure would decode at all.
func EncodeDocument(payload string, size int) ([]byte, error) {
	if _, err := fiscalqr.Parse(payload); err != nil {
		return nil, errors.Join(ErrInvalidPayload, err)
	}
	return Encode(payload, size)
}

// EncodeDataURI renders a payload as a base64 PNG data URI, ready for
// an <img> tag.
func EncodeDataURI(payload string, size int) (string, error) {
	png, err := Encode(payload, size)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("data:image/png;base64,%s", base64.StdEncoding.EncodeToString(png)), nil
}

// EncodeToFile renders a payload straight to a PNG file.
func EncodeToFile(payload, filename string, size int) error {
	if strings.TrimSpace(payload) == "" {
		return ErrEmptyPayload
	}
	if size <= 0 {
		size = defaultSize
	}
	if err := skipqrcode.WriteFile(payload, skipqrcode.Medium, size, filename); err != nil {
		return errors.Join(ErrEncodingFailed, err)
	}
	return nil
}
