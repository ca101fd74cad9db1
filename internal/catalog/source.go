package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"zebaish/internal/models"
)

// Source provides the canonical product list.
type Source interface {
	Fetch(ctx context.Context) ([]models.Product, error)
}

// HTTPSource fetches a { "products": [...] } document over HTTP.
type HTTPSource struct {
	URL    string
	Client *http.Client
}

// Fetch performs a single GET. A non-2xx status or a malformed document is
// an error.
func (s *HTTPSource) Fetch(ctx context.Context) ([]models.Product, error) {
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("catalog request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("catalog fetch: unexpected status %d", resp.StatusCode)
	}
	return decodeDocument(resp.Body)
}

// FileSource reads the catalog document from disk.
type FileSource struct {
	Path string
}

func (s *FileSource) Fetch(_ context.Context) ([]models.Product, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("catalog open: %w", err)
	}
	defer f.Close()
	return decodeDocument(f)
}

// decodeDocument parses a catalog document. A document without a products
// field yields an empty catalog, not an error.
func decodeDocument(r io.Reader) ([]models.Product, error) {
	var doc models.Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("catalog decode: %w", err)
	}
	if doc.Products == nil {
		return []models.Product{}, nil
	}
	return doc.Products, nil
}
