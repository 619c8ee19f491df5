// Package identity resolves customers against the external customer
// directory service.
package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/bancacore/cuenta-ledger/internal/domain/model"
	"github.com/bancacore/cuenta-ledger/internal/domain/port"
	"github.com/bancacore/cuenta-ledger/internal/domain/valueobject"
)

// Client is the HTTP implementation of port.IdentityClient. Every call is
// bounded by the client timeout; outages surface as
// ErrDependencyUnavailable, never as a silently defaulted customer.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

var _ port.IdentityClient = (*Client)(nil)

// NewClient creates the client. timeout bounds each request end to end.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// customerPayload mirrors the directory's wire shape.
type customerPayload struct {
	CustomerID     string `json:"clienteId"`
	Name           string `json:"nombre"`
	Identification string `json:"identificacion"`
	Active         bool   `json:"estado"`
}

type customerEnvelope struct {
	Data customerPayload `json:"data"`
}

// ResolveCustomer fetches the customer. A 404 resolves to a non-existent
// customer; transport errors and server errors wrap
// ErrDependencyUnavailable.
func (c *Client) ResolveCustomer(ctx context.Context, id valueobject.CustomerID) (port.Customer, error) {
	url := fmt.Sprintf("%s/api/clientes/%s", c.baseURL, id.String())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return port.Customer{}, fmt.Errorf("build identity request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return port.Customer{}, fmt.Errorf("identity request for %s: %w: %w", id, model.ErrDependencyUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return port.Customer{ID: id.String(), Exists: false}, nil
	case resp.StatusCode >= 500:
		return port.Customer{}, fmt.Errorf("identity service returned %d for %s: %w",
			resp.StatusCode, id, model.ErrDependencyUnavailable)
	case resp.StatusCode != http.StatusOK:
		return port.Customer{}, fmt.Errorf("identity service returned unexpected status %d for %s", resp.StatusCode, id)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return port.Customer{}, fmt.Errorf("read identity response: %w: %w", model.ErrDependencyUnavailable, err)
	}

	var envelope customerEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return port.Customer{}, fmt.Errorf("decode identity response for %s: %w", id, err)
	}

	return port.Customer{
		ID:             envelope.Data.CustomerID,
		Name:           envelope.Data.Name,
		Identification: envelope.Data.Identification,
		Exists:         true,
		Active:         envelope.Data.Active,
	}, nil
}
