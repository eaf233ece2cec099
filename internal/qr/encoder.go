// Package qr builds the payload encoded into a medicine's QR image and
// rasterizes it to a PNG file.
package qr

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/promedhq/promed/internal/apperrors"
	"github.com/promedhq/promed/internal/domain"
	"github.com/promedhq/promed/internal/utils"
	qrcode "github.com/skip2/go-qrcode"
)

// imageSize is the side length in pixels of rendered QR images.
const imageSize = 256

// Fields are the medicine attributes carried inside a QR payload.
type Fields struct {
	Name              string
	FactoryName       string
	ManufacturingDate string
	ExpiryDate        string
	Uses              string
}

// Encoder produces scan-result URLs. Encoding a URL instead of raw text
// lets a phone camera open a readable results page when scanning.
type Encoder struct {
	baseURL string
}

// NewEncoder creates an encoder pointing at the given application base
// URL, e.g. "https://promed.example.com".
func NewEncoder(baseURL string) *Encoder {
	return &Encoder{baseURL: baseURL}
}

// Encode builds the URL payload for a medicine. Free-text fields are
// percent-encoded by url.Values.
func (e *Encoder) Encode(m *domain.Medicine) string {
	values := url.Values{}
	values.Set("name", m.Name)
	values.Set("factory", m.FactoryName)
	values.Set("mfg", utils.FormatDate(m.ManufacturingDate))
	values.Set("exp", utils.FormatDate(m.ExpiryDate))
	values.Set("uses", m.Uses)
	return fmt.Sprintf("%s/qr-scan?%s", e.baseURL, values.Encode())
}

// Decode parses a payload produced by Encode back into its fields.
func Decode(payload string) (*Fields, error) {
	u, err := url.Parse(payload)
	if err != nil {
		return nil, fmt.Errorf("invalid QR payload: %w", err)
	}
	values := u.Query()
	return DecodeValues(values)
}

// DecodeValues extracts payload fields from already-parsed query values,
// as the /qr-scan handler receives them.
func DecodeValues(values url.Values) (*Fields, error) {
	fields := &Fields{
		Name:              values.Get("name"),
		FactoryName:       values.Get("factory"),
		ManufacturingDate: values.Get("mfg"),
		ExpiryDate:        values.Get("exp"),
		Uses:              values.Get("uses"),
	}
	if fields.Name == "" {
		return nil, fmt.Errorf("QR payload missing name")
	}
	return fields, nil
}

// Render rasterizes payload into a PNG at path, creating the parent
// directory if needed. I/O failures are surfaced as storage errors.
func Render(payload, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return apperrors.NewStorageError(err, path)
	}
	if err := qrcode.WriteFile(payload, qrcode.Medium, imageSize, path); err != nil {
		return apperrors.NewStorageError(err, path)
	}
	return nil
}
