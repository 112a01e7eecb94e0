package capture

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

// ImageStore persists a captured frame and returns a url the rest of
// the app can embed in documents.
type ImageStore interface {
	Store(ctx context.Context, frame []byte, name string) (string, error)
}

// LocalImageStore writes frames to a directory on disk. Used in
// development and tests.
type LocalImageStore struct {
	dir string
}

func NewLocalImageStore(dir string) (*LocalImageStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating uploads dir: %w", err)
	}
	return &LocalImageStore{dir: dir}, nil
}

func (s *LocalImageStore) Store(ctx context.Context, frame []byte, name string) (string, error) {
	filename := fmt.Sprintf("%s-%s.jpg", name, uuid.NewString())
	path := filepath.Join(s.dir, filename)
	if err := os.WriteFile(path, frame, 0o644); err != nil {
		return "", fmt.Errorf("writing image: %w", err)
	}
	return "/uploads/" + filename, nil
}

// CloudinaryImageStore uploads frames to cloudinary and returns the
// https delivery url.
type CloudinaryImageStore struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinaryImageStore(url string) (*CloudinaryImageStore, error) {
	cld, err := cloudinary.NewFromURL(url)
	if err != nil {
		return nil, fmt.Errorf("initializing cloudinary: %w", err)
	}
	return &CloudinaryImageStore{cld: cld}, nil
}

func (s *CloudinaryImageStore) Store(ctx context.Context, frame []byte, name string) (string, error) {
	res, err := s.cld.Upload.Upload(ctx, bytes.NewReader(frame), uploader.UploadParams{
		PublicID: fmt.Sprintf("%s-%s", name, uuid.NewString()),
		Folder:   "makazi",
	})
	if err != nil {
		return "", fmt.Errorf("uploading image: %w", err)
	}
	return res.SecureURL, nil
}
