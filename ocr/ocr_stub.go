//go:build !ocr

// Package ocr wraps the Tesseract engine for recognizing scanned pages.
//
// This is the stub compiled when the "ocr" build tag is not set, so the
// library never requires libtesseract at build time. Every operation
// returns ErrOCRNotEnabled. Rebuild with the tag to enable recognition:
//
//	go build -tags ocr
package ocr

import "errors"

// ErrOCRNotEnabled is returned when OCR support was not compiled in.
// Rebuild with -tags ocr to enable it.
var ErrOCRNotEnabled = errors.New("OCR support not enabled; rebuild with -tags ocr")

// PageSegMode mirrors the page segmentation modes of the OCR-enabled
// build.
type PageSegMode int

const (
	PSM_OSD_ONLY               PageSegMode = 0
	PSM_AUTO_OSD               PageSegMode = 1
	PSM_AUTO_ONLY              PageSegMode = 2
	PSM_AUTO                   PageSegMode = 3
	PSM_SINGLE_COLUMN          PageSegMode = 4
	PSM_SINGLE_BLOCK_VERT_TEXT PageSegMode = 5
	PSM_SINGLE_BLOCK           PageSegMode = 6
	PSM_SINGLE_LINE            PageSegMode = 7
	PSM_SINGLE_WORD            PageSegMode = 8
	PSM_CIRCLE_WORD            PageSegMode = 9
	PSM_SINGLE_CHAR            PageSegMode = 10
	PSM_SPARSE_TEXT            PageSegMode = 11
	PSM_SPARSE_TEXT_OSD        PageSegMode = 12
	PSM_RAW_LINE               PageSegMode = 13
)

// Client is the stub OCR client.
type Client struct{}

// New returns ErrOCRNotEnabled.
func New() (*Client, error) {
	return nil, ErrOCRNotEnabled
}

// Close is a no-op. It is safe on a nil client.
func (c *Client) Close() error { return nil }

// SetLanguages returns ErrOCRNotEnabled.
func (c *Client) SetLanguages(langs ...string) error { return ErrOCRNotEnabled }

// SetDPI returns ErrOCRNotEnabled.
func (c *Client) SetDPI(dpi int) error { return ErrOCRNotEnabled }

// SetTessdataPrefix returns ErrOCRNotEnabled.
func (c *Client) SetTessdataPrefix(prefix string) error { return ErrOCRNotEnabled }

// SetPageSegMode returns ErrOCRNotEnabled.
func (c *Client) SetPageSegMode(mode PageSegMode) error { return ErrOCRNotEnabled }

// RecognizeImage returns ErrOCRNotEnabled.
func (c *Client) RecognizeImage(imageData []byte) (string, error) {
	return "", ErrOCRNotEnabled
}

// HOCRImage returns ErrOCRNotEnabled.
func (c *Client) HOCRImage(imageData []byte) ([]byte, error) {
	return nil, ErrOCRNotEnabled
}
