package repository

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"boutique-backoffice/models"
)

// OrderRepository serves order snapshots stored as JSONB in PostgreSQL.
// Expected schema:
//
//	CREATE TABLE orders (
//	    id         TEXT PRIMARY KEY,
//	    payload    JSONB NOT NULL,
//	    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
//	);
type OrderRepository struct {
	db *sql.DB
}

// NewOrderRepository creates a new OrderRepository
func NewOrderRepository(db *sql.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// Ensure OrderRepository implements OrderRepositoryInterface
var _ OrderRepositoryInterface = (*OrderRepository)(nil)

// GetByID loads the stored payload of one order
func (r *OrderRepository) GetByID(ctx context.Context, id string) (models.Order, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrOrderNotFound
	}

	query := `SELECT payload FROM orders WHERE id = $1`

	var payload []byte
	err := r.db.QueryRowContext(ctx, query, id).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Printf("❌ GetByID: Order not found: id=%s", id)
			return nil, ErrOrderNotFound
		}
		log.Printf("❌ GetByID: Error fetching order: %v", err)
		return nil, fmt.Errorf("failed to fetch order: %w", err)
	}

	order, err := decodeOrderPayload(bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	// the row key is authoritative for the identifier
	if order.ID() == "" {
		order["id"] = id
	}
	return order, nil
}

// Update merges fields into the stored payload
func (r *OrderRepository) Update(ctx context.Context, id string, fields map[string]any) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("order id is required")
	}

	patch, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("failed to encode order fields: %w", err)
	}

	query := `
		UPDATE orders
		SET payload = payload || $2::jsonb, updated_at = now()
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, id, string(patch))
	if err != nil {
		log.Printf("❌ Update: Error updating order id=%s: %v", id, err)
		return fmt.Errorf("failed to update order: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrOrderNotFound
	}

	log.Printf("✅ Update: Successfully updated order id=%s (%d fields)", id, len(fields))
	return nil
}
