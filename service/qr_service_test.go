package service

import (
	"bytes"
	"encoding/base64"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTicketCodeEmbedsNumero(t *testing.T) {
	s := NewQRService("https://shop.example.tn/verify/")

	code := s.TicketCode("CMD-42")
	assert.Equal(t, "https://shop.example.tn/verify?numero=CMD-42", code.Payload)
	assert.Contains(t, code.Payload, "CMD-42")
	require.True(t, strings.HasPrefix(string(code.DataURI), "data:image/png;base64,"))

	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(string(code.DataURI), "data:image/png;base64,"))
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, qrSizePx, img.Bounds().Dx())
}

func TestTicketCodeMissingNumero(t *testing.T) {
	s := NewQRService("https://shop.example.tn/verify")

	code := s.TicketCode("")
	assert.Equal(t, "https://shop.example.tn/verify?numero=", code.Payload)
	assert.NotEmpty(t, code.DataURI)
}

func TestVerificationURLEscapes(t *testing.T) {
	s := NewQRService("https://shop.example.tn/verify")
	assert.Equal(t, "https://shop.example.tn/verify?numero=A%26B+1", s.VerificationURL("A&B 1"))
}
