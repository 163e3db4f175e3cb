// Package leadsource performs the one-shot start-up load of the lead list,
// over HTTP, from a file or from the embedded seed document.
package leadsource

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"sellerconsole/internal/lead"
	"sellerconsole/internal/seed"
)

const tracerName = "sellerconsole/leadsource"

// ErrLoadFailed wraps every failure to obtain the lead list.
var ErrLoadFailed = errors.New("failed to load leads")

// Source fetches the full lead list.
type Source interface {
	Fetch(ctx context.Context) ([]lead.Lead, error)
	Describe() string
}

// New picks a source: url wins over file; with neither, the embedded seed list.
func New(url, file string, timeout time.Duration) Source {
	switch {
	case url != "":
		return NewHTTPSource(url, timeout)
	case file != "":
		return FileSource{Path: strings.TrimPrefix(file, "file://")}
	}
	return EmbeddedSource{}
}

// HTTPSource fetches GET <base>/leads.json.
type HTTPSource struct {
	URL    string
	Client *http.Client
}

// NewHTTPSource appends /leads.json to base unless base already names a .json document.
func NewHTTPSource(base string, timeout time.Duration) *HTTPSource {
	url := base
	if !strings.HasSuffix(url, ".json") {
		url = strings.TrimRight(url, "/") + "/leads.json"
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPSource{URL: url, Client: &http.Client{Timeout: timeout}}
}

func (s *HTTPSource) Describe() string { return s.URL }

func (s *HTTPSource) Fetch(ctx context.Context) ([]lead.Lead, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "leadsource.fetch")
	defer span.End()
	span.SetAttributes(attribute.String("leads.url", s.URL))

	leads, err := s.fetch(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.Int("leads.count", len(leads)))
	return leads, nil
}

func (s *HTTPSource) fetch(ctx context.Context) ([]lead.Lead, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadFailed, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Code: resp.StatusCode, URL: s.URL}
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %v", ErrLoadFailed, err)
	}
	leads, err := Decode(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadFailed, err)
	}
	return leads, nil
}

// StatusError reports a non-2xx response.
type StatusError struct {
	Code int
	URL  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: GET %s returned %d", ErrLoadFailed, e.URL, e.Code)
}

func (e *StatusError) Unwrap() error { return ErrLoadFailed }

// FileSource reads the lead document from disk.
type FileSource struct {
	Path string
}

func (s FileSource) Describe() string { return s.Path }

func (s FileSource) Fetch(ctx context.Context) ([]lead.Lead, error) {
	_, span := otel.Tracer(tracerName).Start(ctx, "leadsource.read")
	defer span.End()
	span.SetAttributes(attribute.String("leads.file", s.Path))

	data, err := os.ReadFile(s.Path)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("%w: %v", ErrLoadFailed, err)
	}
	leads, err := Decode(data)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("%w: %v", ErrLoadFailed, err)
	}
	return leads, nil
}

// EmbeddedSource serves the seed list compiled into the binary.
type EmbeddedSource struct{}

func (EmbeddedSource) Describe() string { return "embedded seed" }

func (EmbeddedSource) Fetch(ctx context.Context) ([]lead.Lead, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadFailed, err)
	}
	leads, err := Decode(seed.LeadsJSON())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadFailed, err)
	}
	return leads, nil
}
