package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"boutique-backoffice/models"
)

// OrderAPIRepository reads and writes orders through the backend REST API
// (GET/PUT {baseURL}/commande/{id}). Requests are bounded by the client
// timeout and never retried.
type OrderAPIRepository struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewOrderAPIRepository creates a new OrderAPIRepository
func NewOrderAPIRepository(baseURL, token string, timeout time.Duration) *OrderAPIRepository {
	return &OrderAPIRepository{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Ensure OrderAPIRepository implements OrderRepositoryInterface
var _ OrderRepositoryInterface = (*OrderAPIRepository)(nil)

func (r *OrderAPIRepository) orderURL(id string) string {
	return fmt.Sprintf("%s/commande/%s", r.baseURL, url.PathEscape(id))
}

func (r *OrderAPIRepository) do(ctx context.Context, method, endpoint string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if r.token != "" {
		req.Header.Set("Authorization", "Bearer "+r.token)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request %s %s failed: %w", method, endpoint, err)
	}

	if resp.StatusCode == http.StatusNotFound {
		resp.Body.Close()
		return nil, ErrOrderNotFound
	}
	if resp.StatusCode >= 400 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		resp.Body.Close()
		return nil, fmt.Errorf("request failed with status code %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}
	return resp, nil
}

// GetByID fetches one order snapshot
func (r *OrderAPIRepository) GetByID(ctx context.Context, id string) (models.Order, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrOrderNotFound
	}

	endpoint := r.orderURL(id)
	resp, err := r.do(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		log.Printf("❌ GetByID: Error fetching order id=%s: %v", id, err)
		return nil, err
	}
	defer resp.Body.Close()

	order, err := decodeOrderPayload(resp.Body)
	if err != nil {
		log.Printf("❌ GetByID: Error decoding order id=%s: %v", id, err)
		return nil, err
	}
	return order, nil
}

// Update sends the changed fields with PUT
func (r *OrderAPIRepository) Update(ctx context.Context, id string, fields map[string]any) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("order id is required")
	}

	payload, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("failed to encode order fields: %w", err)
	}

	resp, err := r.do(ctx, http.MethodPut, r.orderURL(id), bytes.NewReader(payload))
	if err != nil {
		log.Printf("❌ Update: Error updating order id=%s: %v", id, err)
		return err
	}
	resp.Body.Close()

	log.Printf("✅ Update: Successfully updated order id=%s (%d fields)", id, len(fields))
	return nil
}

// decodeOrderPayload accepts a bare order object or one wrapped in {"data": …} / {"commande": …}
func decodeOrderPayload(body io.Reader) (models.Order, error) {
	dec := json.NewDecoder(body)
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode order: %w", err)
	}
	if raw == nil {
		return nil, ErrOrderNotFound
	}
	for _, key := range []string{"data", "commande", "order"} {
		if inner, ok := raw[key].(map[string]any); ok {
			return models.Order(inner), nil
		}
	}
	return models.Order(raw), nil
}
