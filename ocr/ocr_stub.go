//go:build !ocr

// Package ocr recovers searchable text from rendered pages.
//
// This is the stub compiled when the "ocr" build tag is not set; every
// operation returns ErrNotEnabled. Rebuild with
//
//	go build -tags ocr
//
// to link the Tesseract engine, which must be installed on the system.
package ocr

import "image"

// Client is the stub OCR client.
type Client struct{}

// New returns ErrNotEnabled.
func New() (*Client, error) {
	return nil, ErrNotEnabled
}

// Close is a no-op, safe on a nil client.
func (c *Client) Close() error {
	return nil
}

// SetLanguage returns ErrNotEnabled.
func (c *Client) SetLanguage(lang string) error {
	return ErrNotEnabled
}

// ExtractFromBytes returns ErrNotEnabled.
func (c *Client) ExtractFromBytes(data []byte) (string, error) {
	return "", ErrNotEnabled
}

// ExtractText returns ErrNotEnabled.
func (c *Client) ExtractText(img image.Image) (string, error) {
	return "", ErrNotEnabled
}

// ExtractText returns ErrNotEnabled.
func ExtractText(img image.Image) (string, error) {
	return "", ErrNotEnabled
}
