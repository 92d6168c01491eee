// Package drive uploads exported life event files to a Google Drive folder
// using a service account.
package drive

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	gdrive "google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	goption "google.golang.org/api/option"

	"lifeevents/internal/export"
	"lifeevents/internal/log"
)

// Credentials selects the service account key. JSON wins over File.
type Credentials struct {
	JSON string
	File string
}

// Load returns the raw key, falling back to GOOGLE_APPLICATION_CREDENTIALS
// when neither field is set.
func (c Credentials) Load() ([]byte, error) {
	inline := strings.TrimSpace(c.JSON)
	file := strings.TrimSpace(c.File)
	if inline == "" && file == "" {
		file = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	switch {
	case inline != "":
		return []byte(inline), nil
	case file != "":
		b, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
		return b, nil
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}
}

// uploader creates one file in Drive and returns its id.
type uploader func(ctx context.Context, meta *gdrive.File, body []byte, contentType string) (string, error)

// Client writes export documents into a Drive folder. It implements export.Sink.
type Client struct {
	folderID string
	upload   uploader
	logger   *log.Logger
}

var _ export.Sink = (*Client)(nil)

// New builds a Drive service scoped to files the service account creates.
func New(ctx context.Context, folderID string, creds Credentials, logger *log.Logger) (*Client, error) {
	folderID = strings.TrimSpace(folderID)
	if folderID == "" {
		return nil, errors.New("missing Google Drive folder id")
	}

	credentialsJSON, err := creds.Load()
	if err != nil {
		return nil, err
	}

	svc, err := gdrive.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gdrive.DriveFileScope))
	if err != nil {
		return nil, fmt.Errorf("create drive service: %w", err)
	}

	return newClient(folderID, serviceUploader(svc), logger), nil
}

func newClient(folderID string, up uploader, logger *log.Logger) *Client {
	if logger == nil {
		logger = log.Discard()
	}
	return &Client{
		folderID: folderID,
		upload:   up,
		logger:   logger.WithComponent(log.ComponentDrive),
	}
}

func serviceUploader(svc *gdrive.Service) uploader {
	return func(ctx context.Context, meta *gdrive.File, body []byte, contentType string) (string, error) {
		f, err := svc.Files.Create(meta).
			Media(bytes.NewReader(body), googleapi.ContentType(contentType)).
			Fields("id").
			Context(ctx).
			Do()
		if err != nil {
			return "", err
		}
		return f.Id, nil
	}
}

// Deliver uploads doc as a new file in the configured folder.
func (c *Client) Deliver(ctx context.Context, doc export.Document) error {
	meta := &gdrive.File{
		Name:     doc.Filename,
		MimeType: doc.ContentType,
		Parents:  []string{c.folderID},
	}

	id, err := c.upload(ctx, meta, doc.Body, doc.ContentType)
	if err != nil {
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) {
			return fmt.Errorf("upload %s to drive (status %d): %w", doc.Filename, apiErr.Code, err)
		}
		return fmt.Errorf("upload %s to drive: %w", doc.Filename, err)
	}

	c.logger.InfoContext(ctx, "Uploaded life event export",
		"file_id", id,
		"folder_id", c.folderID,
		log.FieldFilename, doc.Filename,
		log.FieldBytes, len(doc.Body),
		log.FieldOperation, log.OpUpload)
	return nil
}
