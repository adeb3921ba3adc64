package assets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/mcdev12/teamsheet/go/clients"
	"github.com/mcdev12/teamsheet/go/internal/models"
)

// HTTPStore serves assets from a remote asset server by logical path
type HTTPStore struct {
	client *clients.BaseClient
}

// NewHTTPStore creates an HTTPStore for the server at baseURL
func NewHTTPStore(baseURL string) *HTTPStore {
	return &HTTPStore{client: clients.NewBaseClient(baseURL)}
}

// SetHeader adds a header, such as an API token, to every request
func (s *HTTPStore) SetHeader(key, value string) {
	s.client.SetHeader(key, value)
}

// SetTimeout bounds every asset request
func (s *HTTPStore) SetTimeout(timeout time.Duration) {
	s.client.SetTimeout(timeout)
}

// Get downloads enough of the asset to detect its type. A 404 yields nil, nil.
func (s *HTTPStore) Get(ctx context.Context, p string) (*models.Asset, error) {
	resp, err := s.client.Do(ctx, "GET", Clean(p), nil)
	if errors.Is(err, clients.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch asset %s: %w", p, err)
	}
	defer resp.Body.Close()

	mt, err := mimetype.DetectReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to detect type of asset %s: %w", p, err)
	}

	return &models.Asset{
		Path:     Clean(p),
		Type:     models.AssetTypeFor(mt.String()),
		MimeType: mt.String(),
		Size:     resp.ContentLength,
	}, nil
}

// Open streams the asset body
func (s *HTTPStore) Open(ctx context.Context, p string) (io.ReadCloser, error) {
	resp, err := s.client.Do(ctx, "GET", Clean(p), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open asset %s: %w", p, err)
	}
	return resp.Body, nil
}
