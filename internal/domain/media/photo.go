// Package media holds the upload rules for rally photographs. The gateway
// never stores image bytes; it only decides whether an upload is worth
// forwarding.
package media

import (
	"mime/multipart"

	"github.com/pkg/errors"
)

const (
	MaxPhotoBytes  = 5 << 20
	MaxDescription = 500
)

var allowedTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

var (
	ErrDescriptionRequired = errors.New("La descripción es obligatoria")
	ErrDescriptionTooLong  = errors.New("La descripción no puede superar los 500 caracteres")
	ErrPhotoRequired       = errors.New("La imagen y el ID del rally son obligatorios")
	ErrPhotoTooLarge       = errors.New("La imagen no puede superar los 5MB")
	ErrPhotoType           = errors.New("Solo se permiten imágenes JPG, PNG o WEBP")
)

// ValidateUpload checks a publication submission before any bytes are
// forwarded. Error messages are user-facing and pass through verbatim.
func ValidateUpload(description string, file *multipart.FileHeader) error {
	if description == "" {
		return ErrDescriptionRequired
	}
	if len(description) > MaxDescription {
		return ErrDescriptionTooLong
	}
	if file == nil {
		return ErrPhotoRequired
	}
	if file.Size > MaxPhotoBytes {
		return ErrPhotoTooLarge
	}
	if !allowedTypes[file.Header.Get("Content-Type")] {
		return ErrPhotoType
	}
	return nil
}
