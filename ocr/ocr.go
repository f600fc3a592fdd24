//go:build ocr

// Package ocr wraps the Tesseract engine for recognizing scanned pages,
// including mixed Latin and right-to-left scripts such as Persian and
// Arabic. It produces both plain text and hOCR output; hOCR carries the
// word and line structure needed to correct right-to-left reading order.
//
// Tesseract must be installed on the system, along with the traineddata
// for every requested language (for Persian, the fas pack). On
// Ubuntu/Debian:
//
//	apt-get install tesseract-ocr tesseract-ocr-fas
//
// On macOS:
//
//	brew install tesseract tesseract-lang
package ocr

import (
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// Client wraps a Tesseract session.
type Client struct {
	client *gosseract.Client
}

// New creates an OCR client. Close it when no longer needed to release
// the underlying Tesseract resources.
func New() (*Client, error) {
	return &Client{client: gosseract.NewClient()}, nil
}

// Close releases OCR resources.
func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// SetLanguages selects the recognition languages, for example
// ("eng", "fas") for mixed English and Persian text.
func (c *Client) SetLanguages(langs ...string) error {
	if len(langs) == 0 {
		return fmt.Errorf("no languages given")
	}
	return c.client.SetLanguage(langs...)
}

// SetDPI tells Tesseract the resolution of the source images. Scanned
// pages without embedded DPI metadata otherwise trigger a guess that
// hurts recognition.
func (c *Client) SetDPI(dpi int) error {
	if dpi <= 0 {
		return fmt.Errorf("invalid dpi %d", dpi)
	}
	return c.client.SetVariable(gosseract.SettableVariable("user_defined_dpi"), fmt.Sprint(dpi))
}

// SetTessdataPrefix points Tesseract at a non-default traineddata
// directory.
func (c *Client) SetTessdataPrefix(prefix string) error {
	return c.client.SetTessdataPrefix(prefix)
}

// SetPageSegMode sets the page segmentation mode. See the
// gosseract.PSM constants.
func (c *Client) SetPageSegMode(mode gosseract.PageSegMode) error {
	return c.client.SetPageSegMode(mode)
}

// RecognizeImage runs OCR on image data (PNG, TIFF, JPEG) and returns
// the recognized plain text, trimmed.
func (c *Client) RecognizeImage(imageData []byte) (string, error) {
	if err := c.client.SetImageFromBytes(imageData); err != nil {
		return "", fmt.Errorf("set image: %w", err)
	}
	text, err := c.client.Text()
	if err != nil {
		return "", fmt.Errorf("recognize: %w", err)
	}
	return strings.TrimSpace(text), nil
}

// HOCRImage runs OCR on image data and returns the hOCR markup, which
// preserves the line and word segmentation of the page.
func (c *Client) HOCRImage(imageData []byte) ([]byte, error) {
	if err := c.client.SetImageFromBytes(imageData); err != nil {
		return nil, fmt.Errorf("set image: %w", err)
	}
	out, err := c.client.HOCRText()
	if err != nil {
		return nil, fmt.Errorf("recognize hocr: %w", err)
	}
	return []byte(out), nil
}
