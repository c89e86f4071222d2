package service

import (
	"context"

	"boutique-backoffice/models"
)

// ImageServiceInterface defines the contract for image materialization
type ImageServiceInterface interface {
	Materialize(ctx context.Context, imagePath, backendOrigin string) models.MaterializeResult
	PlaceholderURL() string
}

// Ensure ImageService implements ImageServiceInterface
var _ ImageServiceInterface = (*ImageService)(nil)
