package service

import (
	"bytes"
	"context"
	"fmt"
	"log"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

// DriveStorageService uploads exported artwork to a Google Drive folder
// and exposes it through a public link.
type DriveStorageService struct {
	client   *drive.Service
	folderID string
}

var _ StorageServiceInterface = (*DriveStorageService)(nil)

// NewDriveStorageService creates a Drive-backed storage service.
// credentialsPath should be the path to the Service Account JSON file.
func NewDriveStorageService(credentialsPath, folderID string) (*DriveStorageService, error) {
	ctx := context.Background()

	// option.WithCredentialsFile automatically handles Service Account authentication
	client, err := drive.NewService(ctx, option.WithCredentialsFile(credentialsPath))
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}

	return &DriveStorageService{
		client:   client,
		folderID: folderID,
	}, nil
}

// Upload writes the file into the configured folder, makes it readable
// by anyone with the link, and returns the public URL plus the Drive
// file ID as the storage path.
func (ds *DriveStorageService) Upload(ctx context.Context, filename string, data []byte) (string, string, error) {
	meta := &drive.File{
		Name:     filename,
		MimeType: detectMimeType(filename),
	}
	if ds.folderID != "" {
		meta.Parents = []string{ds.folderID}
	}

	created, err := ds.client.Files.Create(meta).
		Context(ctx).
		Media(bytes.NewReader(data)).
		Fields("id").
		Do()
	if err != nil {
		return "", "", fmt.Errorf("failed to upload %s: %w", filename, err)
	}

	_, err = ds.client.Permissions.Create(created.Id, &drive.Permission{
		Type: "anyone",
		Role: "reader",
	}).Context(ctx).Do()
	if err != nil {
		return "", "", fmt.Errorf("failed to publish %s: %w", filename, err)
	}

	publicURL := fmt.Sprintf("https://drive.google.com/uc?id=%s", created.Id)
	log.Printf("☁️  Uploaded %s (%d bytes) -> %s", filename, len(data), publicURL)
	return publicURL, created.Id, nil
}

// Delete removes a previously uploaded file by its Drive file ID.
func (ds *DriveStorageService) Delete(ctx context.Context, storagePath string) error {
	if storagePath == "" {
		return nil
	}
	if err := ds.client.Files.Delete(storagePath).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to delete drive file %s: %w", storagePath, err)
	}
	return nil
}

func detectMimeType(filename string) string {
	if len(filename) > 4 && filename[len(filename)-4:] == ".zip" {
		return "application/zip"
	}
	return "image/png"
}
