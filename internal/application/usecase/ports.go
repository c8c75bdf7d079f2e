package usecase

import (
	"context"
	"io"
)

// ObjectStorage almacenamiento de binarios (S3 o compatible). Devuelve la URL del objeto.
type ObjectStorage interface {
	Put(ctx context.Context, key, contentType string, body io.Reader) (string, error)
}
