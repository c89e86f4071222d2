package service

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"html/template"
	"image/png"
	"log"
	"net/url"
	"strings"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/qr"

	"boutique-backoffice/models"
)

const qrSizePx = 160

// QRService builds the verification code printed on tickets
type QRService struct {
	verifyBaseURL string
}

// NewQRService creates a new QRService
func NewQRService(verifyBaseURL string) *QRService {
	return &QRService{verifyBaseURL: strings.TrimRight(verifyBaseURL, "/?")}
}

// VerificationURL returns the URL encoded in the ticket code.
// A missing numero yields an empty query value, never an error.
func (s *QRService) VerificationURL(numero string) string {
	return s.verifyBaseURL + "?numero=" + url.QueryEscape(numero)
}

// TicketCode encodes the verification URL for numero as a PNG data URI.
// Encoding failures are logged and leave DataURI empty so the ticket still prints.
func (s *QRService) TicketCode(numero string) *models.TicketCode {
	payload := s.VerificationURL(numero)
	code := &models.TicketCode{Payload: payload}

	dataURI, err := EncodeQRDataURI(payload)
	if err != nil {
		log.Printf("⚠️  TicketCode: Failed to encode QR code for numero=%q: %v", numero, err)
		return code
	}
	code.DataURI = dataURI
	return code
}

// EncodeQRDataURI renders content as a scaled QR code PNG data URI
func EncodeQRDataURI(content string) (template.URL, error) {
	qrCode, err := qr.Encode(content, qr.M, qr.Auto)
	if err != nil {
		return "", fmt.Errorf("failed to encode QR code: %w", err)
	}

	scaled, err := barcode.Scale(qrCode, qrSizePx, qrSizePx)
	if err != nil {
		return "", fmt.Errorf("failed to scale QR code: %w", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, scaled); err != nil {
		return "", fmt.Errorf("failed to encode QR code PNG: %w", err)
	}

	// template.URL: html/template would otherwise rewrite data: URIs to #ZgotmplZ
	return template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())), nil
}
