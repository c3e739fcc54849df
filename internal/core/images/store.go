package images

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"ai-vocab-coach/config"
	"ai-vocab-coach/internal/oracle"
	s3client "ai-vocab-coach/pkg/s3"
	"ai-vocab-coach/pkg/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// Store persists generated mnemonic-image bytes and hands back a stable
// reference for DictEntry.ImageRef.
type Store interface {
	Put(ctx context.Context, term string, img *oracle.GeneratedImage) (string, error)
}

// NewFromConfig picks S3 when a bucket is configured, local disk otherwise.
func NewFromConfig() Store {
	if strings.TrimSpace(config.Cfg.S3.Bucket) != "" {
		return &S3Store{bucket: config.Cfg.S3.Bucket}
	}
	return &LocalStore{baseDir: filepath.Join("storage", "images")}
}

func objectName(data []byte, mime string) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]) + extForMime(mime)
}

func extForMime(mime string) string {
	switch mime {
	case "image/jpeg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	default:
		return ".png"
	}
}

// S3Store writes images to a MinIO/S3 bucket; the reference is the object
// key prefixed with the bucket.
type S3Store struct {
	bucket string
}

func (s *S3Store) Put(ctx context.Context, term string, img *oracle.GeneratedImage) (string, error) {
	client, err := s3client.GetClient()
	if err != nil {
		return "", fmt.Errorf("s3 client: %w", err)
	}

	// Ensure bucket exists
	if _, err := client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(s.bucket)}); err != nil {
		_, crtErr := client.CreateBucket(ctx, &s3.CreateBucketInput{Bucket: aws.String(s.bucket)})
		if crtErr != nil {
			var bErr *s3types.BucketAlreadyOwnedByYou
			if !errors.As(crtErr, &bErr) {
				return "", fmt.Errorf("create bucket: %w", crtErr)
			}
		}
	}

	name := objectName(img.Data, img.Mime)
	_, err = client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(name),
		Body:        bytes.NewReader(img.Data),
		ContentType: aws.String(img.Mime),
	})
	if err != nil {
		logger.Error(err, "%v: put image failed", config.ModuleImages)
		return "", fmt.Errorf("put object: %w", err)
	}

	return fmt.Sprintf("s3://%s/%s", s.bucket, name), nil
}

// LocalStore writes images under a local directory; the reference is the
// file path.
type LocalStore struct {
	baseDir string
}

func (s *LocalStore) Put(ctx context.Context, term string, img *oracle.GeneratedImage) (string, error) {
	if err := os.MkdirAll(s.baseDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create storage dir: %w", err)
	}
	name := objectName(img.Data, img.Mime)
	path := filepath.Join(s.baseDir, name)
	if err := os.WriteFile(path, img.Data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write image: %w", err)
	}
	return path, nil
}
