package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/aws/aws-sdk-go/service/s3/s3manager/s3manageriface"

	"github.com/jhoicas/Onboarding-api/internal/application/usecase"
	"github.com/jhoicas/Onboarding-api/pkg/config"
)

// S3Storage sube documentos a un bucket S3 (o compatible, ej. MinIO) con s3manager.
type S3Storage struct {
	uploader   s3manageriface.UploaderAPI
	bucket     string
	publicBase string
}

var _ usecase.ObjectStorage = (*S3Storage)(nil)

// NewS3Storage crea la sesión AWS a partir de la configuración.
// Sin AccessKey se usa la cadena de credenciales por defecto del SDK.
func NewS3Storage(cfg config.StorageConfig) (*S3Storage, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3: bucket requerido")
	}
	awsCfg := &aws.Config{
		Region:           aws.String(cfg.Region),
		S3ForcePathStyle: aws.Bool(cfg.PathStyle),
	}
	if cfg.Endpoint != "" {
		awsCfg.Endpoint = aws.String(cfg.Endpoint)
	}
	if cfg.AccessKey != "" {
		awsCfg.Credentials = credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, "")
	}
	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, fmt.Errorf("s3: sesión: %w", err)
	}
	return NewS3StorageWithUploader(s3manager.NewUploader(sess), cfg.Bucket, cfg.PublicBaseURL), nil
}

// NewS3StorageWithUploader permite inyectar el uploader (tests).
func NewS3StorageWithUploader(up s3manageriface.UploaderAPI, bucket, publicBase string) *S3Storage {
	return &S3Storage{uploader: up, bucket: bucket, publicBase: strings.TrimRight(publicBase, "/")}
}

// Put sube el objeto y devuelve su URL: PublicBaseURL/key si está configurada, si no la Location de S3.
func (s *S3Storage) Put(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	out, err := s.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
		Body:        body,
	})
	if err != nil {
		return "", fmt.Errorf("s3: upload %s: %w", key, err)
	}
	if s.publicBase != "" {
		return s.publicBase + "/" + escapeKey(key), nil
	}
	return out.Location, nil
}

func escapeKey(key string) string {
	parts := strings.Split(key, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return strings.Join(parts, "/")
}
