package trip

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/pmcdona037/mcd-moves/internal/geojson"
)

var (
	// ErrNotFound means the data root has no such resource.
	ErrNotFound = errors.New("resource not found")
	// ErrNoDays means the trip metadata declares an empty day list.
	ErrNoDays = errors.New("trip has no days configured")
)

// Source provides a trip's metadata and per-day geometry documents.
type Source interface {
	Meta(ctx context.Context, tripID string) (Meta, error)
	Day(ctx context.Context, tripID, file string) (*geojson.Document, error)
}

// HTTPSource reads trip data from a static tree rooted at a base URL:
// {base}/{tripID}/meta.json and {base}/{tripID}/{file}.
type HTTPSource struct {
	base     string
	client   *http.Client
	validate *validator.Validate
}

func NewHTTPSource(base string, timeout time.Duration) *HTTPSource {
	return &HTTPSource{
		base:     strings.TrimRight(base, "/"),
		client:   &http.Client{Timeout: timeout},
		validate: validator.New(),
	}
}

func (s *HTTPSource) Meta(ctx context.Context, tripID string) (Meta, error) {
	body, err := s.get(ctx, tripID, "meta.json")
	if err != nil {
		return Meta{}, err
	}
	var meta Meta
	if err := json.Unmarshal(body, &meta); err != nil {
		return Meta{}, fmt.Errorf("parse meta.json: %w", err)
	}
	if err := s.validate.Struct(meta); err != nil {
		return Meta{}, fmt.Errorf("invalid meta.json: %w", err)
	}
	return meta, nil
}

func (s *HTTPSource) Day(ctx context.Context, tripID, file string) (*geojson.Document, error) {
	body, err := s.get(ctx, tripID, file)
	if err != nil {
		return nil, err
	}
	doc, err := geojson.Decode(body)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", file, err)
	}
	return doc, nil
}

func (s *HTTPSource) get(ctx context.Context, tripID, file string) ([]byte, error) {
	url := s.base + "/" + tripID + "/" + file
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", file, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("fetch %s: %w", file, ErrNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: status %d", file, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
