package persianocr

import (
	"runtime"

	"github.com/mosaeedv/persianOCR/ocr"
)

// Config holds the knobs for running a document through OCR and
// correction.
type Config struct {
	// Languages are the Tesseract language codes, tried together.
	Languages []string
	// DPI is the resolution reported to Tesseract for source images.
	DPI int
	// TessdataPrefix overrides the traineddata directory. Empty means
	// the system default.
	TessdataPrefix string
	// Workers is the number of pages corrected concurrently.
	Workers int
}

// DefaultConfig returns settings tuned for mixed English and Persian
// scans: eng+fas recognition at 300 DPI.
func DefaultConfig() Config {
	return Config{
		Languages: []string{"eng", "fas"},
		DPI:       300,
		Workers:   runtime.NumCPU(),
	}
}

// NewOCR builds an OCR client configured per c. It fails when OCR
// support is not compiled in or a setting cannot be applied; see the
// ocr package for the build tag.
func (c Config) NewOCR() (*ocr.Client, error) {
	client, err := ocr.New()
	if err != nil {
		return nil, err
	}
	if len(c.Languages) > 0 {
		if err := client.SetLanguages(c.Languages...); err != nil {
			client.Close()
			return nil, err
		}
	}
	if c.DPI > 0 {
		if err := client.SetDPI(c.DPI); err != nil {
			client.Close()
			return nil, err
		}
	}
	if c.TessdataPrefix != "" {
		if err := client.SetTessdataPrefix(c.TessdataPrefix); err != nil {
			client.Close()
			return nil, err
		}
	}
	return client, nil
}
