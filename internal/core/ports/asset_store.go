package ports

import "context"

// AssetStore persists uploaded image assets and returns the public path
// stored on the event (e.g. "/uploads/3f1c....png"). Rejected uploads
// (wrong type, too large) surface as domain.ErrValidation.
type AssetStore interface {
	Save(ctx context.Context, upload *ImageUpload) (string, error)
}
