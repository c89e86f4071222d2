package service

import (
	"context"

	"boutique-backoffice/models"
)

// PDFServiceInterface defines the contract for document printing
type PDFServiceInterface interface {
	GeneratePDF(ctx context.Context, renderURL string, variant models.DocumentVariant) ([]byte, error)
}

// Ensure PDFService implements PDFServiceInterface
var _ PDFServiceInterface = (*PDFService)(nil)
