//go:build ocr

// Package ocr recovers searchable text from rendered pages.
//
// It wraps the Tesseract engine via gosseract and requires Tesseract to
// be installed on the system. On macOS:
//
//	brew install tesseract
//
// On Ubuntu/Debian:
//
//	apt-get install tesseract-ocr
//
// Recognition defaults to English; call SetLanguage("chi_sim+eng") or
// similar before extracting text from Chinese documents.
package ocr

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// Client wraps a Tesseract session. Close it when done to release the
// engine's resources.
type Client struct {
	client *gosseract.Client
}

// New creates an OCR client.
func New() (*Client, error) {
	return &Client{client: gosseract.NewClient()}, nil
}

// Close releases the underlying Tesseract session. Safe on a client
// whose session is already gone.
func (c *Client) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// SetLanguage sets the recognition language(s), "+"-separated for
// multiple, e.g. "chi_sim+eng".
func (c *Client) SetLanguage(lang string) error {
	return c.client.SetLanguage(lang)
}

// ExtractFromBytes recognizes text in encoded image data (PNG, JPEG,
// TIFF). The result is trimmed of surrounding whitespace.
func (c *Client) ExtractFromBytes(data []byte) (string, error) {
	if err := c.client.SetImageFromBytes(data); err != nil {
		return "", fmt.Errorf("ocr: set image: %w", err)
	}
	text, err := c.client.Text()
	if err != nil {
		return "", fmt.Errorf("ocr: recognize: %w", err)
	}
	return strings.TrimSpace(text), nil
}

// ExtractText recognizes text on a decoded image, typically a rendered
// page surface.
func (c *Client) ExtractText(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("ocr: encode page: %w", err)
	}
	return c.ExtractFromBytes(buf.Bytes())
}

// ExtractText recognizes text on img with a throwaway client using the
// default language.
func ExtractText(img image.Image) (string, error) {
	c, err := New()
	if err != nil {
		return "", err
	}
	defer c.Close()
	return c.ExtractText(img)
}
