package media

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// Store is the media-hosting collaborator: it uploads files and deletes
// them by their storage path. The path IS the public ID on the host, so
// the path persisted at upload time is the same identity Delete needs.
type Store interface {
	Upload(ctx context.Context, file io.Reader, path string, kind Kind) (string, error)
	Delete(ctx context.Context, path string) error
}

type CloudinaryStore struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinaryStore() (*CloudinaryStore, error) {
	cld, err := cloudinary.NewFromURL(os.Getenv("CLOUDINARY_URL"))
	if err != nil {
		return nil, err
	}
	return &CloudinaryStore{cld: cld}, nil
}

func (s *CloudinaryStore) Upload(ctx context.Context, file io.Reader, path string, kind Kind) (string, error) {
	resourceType := "image"
	if kind == KindVideo {
		resourceType = "video"
	}

	// No Folder param: Cloudinary would fold it into the public ID and
	// the stored path would no longer match the asset. The images/ and
	// videos/ prefixes in the path namespace the assets instead.
	result, err := s.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		PublicID:     path,
		ResourceType: resourceType,
	})
	if err != nil {
		return "", err
	}
	return result.SecureURL, nil
}

func (s *CloudinaryStore) Delete(ctx context.Context, path string) error {
	resourceType := "image"
	if KindFromPath(path) == KindVideo {
		resourceType = "video"
	}

	// Destroy defaults to image; video assets need the explicit type.
	result, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     path,
		ResourceType: resourceType,
	})
	if err != nil {
		return err
	}
	if result.Result != "ok" {
		return fmt.Errorf("destroy %s: %s", path, result.Result)
	}
	return nil
}
