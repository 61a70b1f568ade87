// Package client is a typed Go client for the medtimer HTTP API.
package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
)

type Client struct {
	rc *resty.Client
}

// New constructs a Client for the server at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("baseURL cannot be empty")
	}
	rc := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json").
		SetTimeout(30 * time.Second)

	c := &Client{rc: rc}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// ListMedications GET /med/. A non-positive count leaves the server default.
func (c *Client) ListMedications(ctx context.Context, count int) ([]Medication, error) {
	var out []Medication
	if err := c.get(ctx, "/med/", count, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetMedication returns nil when no medication has the given uuid.
func (c *Client) GetMedication(ctx context.Context, id uuid.UUID) (*Medication, error) {
	var out *Medication
	if err := c.get(ctx, "/med/by-uuid/"+id.String()+"/", 0, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListMedicationsByName(ctx context.Context, name string, count int) ([]Medication, error) {
	var out []Medication
	if err := c.get(ctx, "/med/by-name/"+url.PathEscape(name)+"/", count, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListEntries returns entries most recent first.
func (c *Client) ListEntries(ctx context.Context, count int) ([]Entry, error) {
	var out []Entry
	if err := c.get(ctx, "/entry/", count, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetEntry returns nil when no entry has the given uuid.
func (c *Client) GetEntry(ctx context.Context, id uuid.UUID) (*Entry, error) {
	var out *Entry
	if err := c.get(ctx, "/entry/by-entry-uuid/"+id.String()+"/", 0, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListEntriesByMedicationUUID(ctx context.Context, id uuid.UUID, count int) ([]Entry, error) {
	var out []Entry
	if err := c.get(ctx, "/entry/by-med-uuid/"+id.String()+"/", count, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListEntriesByMedicationName(ctx context.Context, name string, count int) ([]MedicationEntry, error) {
	var out []MedicationEntry
	if err := c.get(ctx, "/entry/by-med-name/"+url.PathEscape(name)+"/", count, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Health reports the server's self-assessed health.
func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	var out HealthStatus
	if err := c.get(ctx, "/health/", 0, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Spec returns the service's OpenAPI document as JSON.
func (c *Client) Spec(ctx context.Context) ([]byte, error) {
	resp, err := c.rc.R().SetContext(ctx).Get("/spec/")
	if err != nil {
		return nil, fmt.Errorf("GET /spec/: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, &StatusError{Method: http.MethodGet, Path: "/spec/", Code: resp.StatusCode(), Body: resp.String()}
	}
	return resp.Body(), nil
}

// HealthStatus is the body of GET /health/.
type HealthStatus struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

func (s *HealthStatus) Healthy() bool { return s.Status == "healthy" }

func (c *Client) get(ctx context.Context, path string, count int, out any) error {
	req := c.rc.R().SetContext(ctx).SetResult(out)
	if count > 0 {
		req.SetQueryParam("count", strconv.Itoa(count))
	}
	resp, err := req.Get(path)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return &StatusError{Method: http.MethodGet, Path: path, Code: resp.StatusCode(), Body: resp.String()}
	}
	return nil
}
