// Package store is the Store: durable PostgreSQL records of Delivery and
// Rider rows (spec.md §4.5). The persisted status column is a legacy echo of
// the Status Cache kept for operational inspection only — the cache is
// canonical, never this package (spec.md Design Notes).
//
// Adapted from stock/store_postgres.go's connection and query style; the
// transactional reservation pattern in stock/store_reservations.go is not
// needed here (deliveries have no quantity to reserve) but its
// sql.ErrNoRows and unique-violation idioms carry over directly.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/timour/delivery-service/api"
	"github.com/timour/delivery-service/internal/apperr"
)

// Store wraps a PostgreSQL connection pool.
type Store struct {
	db *sql.DB
}

// New opens and pings a PostgreSQL connection pool.
func New(connectionString string) (*Store, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}

// NewDelivery is the row shape for CreateDelivery.
type NewDelivery struct {
	OrderID         string
	PickupCode      string
	PickupLocation  api.Point
	DropOffLocation api.Point
}

// Delivery is a delivery row. RiderID holds the assigned rider's id when one
// is set; the rider row itself is not joined or loaded.
type Delivery struct {
	OrderID         string
	RiderID         *string
	PickupCode      string
	PickupLocation  api.Point
	DropOffLocation api.Point
}

// CreateDelivery inserts a new delivery row. A duplicate order_id is
// AlreadyExists — callers on the at-least-once redelivery path must treat
// that as success (spec.md §4.2.1 step 4).
func (s *Store) CreateDelivery(ctx context.Context, d NewDelivery) error {
	query := `
		INSERT INTO deliveries (order_id, pickup_code, pickup_lat, pickup_lng, dropoff_lat, dropoff_lng, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.db.ExecContext(ctx, query,
		d.OrderID, d.PickupCode,
		d.PickupLocation.Latitude, d.PickupLocation.Longitude,
		d.DropOffLocation.Latitude, d.DropOffLocation.Longitude,
		string(api.StatusRiderUnaccept),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperr.Wrap(apperr.KindAlreadyExists, "delivery already exists for order "+d.OrderID, err)
		}
		return apperr.Wrap(apperr.KindTransport, "failed to create delivery", err)
	}
	return nil
}

// GetDelivery fetches a delivery row by order id.
func (s *Store) GetDelivery(ctx context.Context, orderID string) (*Delivery, error) {
	query := `
		SELECT order_id, rider_id, pickup_code, pickup_lat, pickup_lng, dropoff_lat, dropoff_lng
		FROM deliveries WHERE order_id = $1
	`
	var d Delivery
	var riderID sql.NullString
	err := s.db.QueryRowContext(ctx, query, orderID).Scan(
		&d.OrderID, &riderID, &d.PickupCode,
		&d.PickupLocation.Latitude, &d.PickupLocation.Longitude,
		&d.DropOffLocation.Latitude, &d.DropOffLocation.Longitude,
	)
	if err == sql.ErrNoRows {
		return nil, apperr.New(apperr.KindNotFound, "delivery not found: "+orderID)
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.KindTransport, "failed to get delivery", err)
	}
	if riderID.Valid {
		d.RiderID = &riderID.String
	}
	return &d, nil
}

// UpdateDeliveryRider records the rider who accepted orderID. No effect when
// the row is absent — callers are expected to have checked via GetDelivery.
func (s *Store) UpdateDeliveryRider(ctx context.Context, orderID, riderID string) error {
	query := `UPDATE deliveries SET rider_id = $1 WHERE order_id = $2`
	if _, err := s.db.ExecContext(ctx, query, riderID, orderID); err != nil {
		return apperr.Wrap(apperr.KindTransport, "failed to update delivery rider", err)
	}
	return nil
}

// UpdateDeliveryStatus writes the legacy status echo column. Not consulted
// by the state machine; the Status Cache is canonical.
func (s *Store) UpdateDeliveryStatus(ctx context.Context, orderID string, status api.DeliveryStatus) error {
	query := `UPDATE deliveries SET status = $1 WHERE order_id = $2`
	if _, err := s.db.ExecContext(ctx, query, string(status), orderID); err != nil {
		return apperr.Wrap(apperr.KindTransport, "failed to update delivery status", err)
	}
	return nil
}

// NewRider is the row shape for CreateRider.
type NewRider struct {
	RiderID     string
	Username    string
	PhoneNumber string
}

// Rider is a full rider row.
type Rider struct {
	RiderID     string
	Username    string
	PhoneNumber string
}

// CreateRider inserts a new rider row. A duplicate rider_id is
// AlreadyExists — treated as success on redelivery (spec.md §4.2.2).
func (s *Store) CreateRider(ctx context.Context, r NewRider) error {
	query := `INSERT INTO riders (rider_id, username, phone_number) VALUES ($1, $2, $3)`
	_, err := s.db.ExecContext(ctx, query, r.RiderID, r.Username, r.PhoneNumber)
	if err != nil {
		if isUniqueViolation(err) {
			return apperr.Wrap(apperr.KindAlreadyExists, "rider already exists: "+r.RiderID, err)
		}
		return apperr.Wrap(apperr.KindTransport, "failed to create rider", err)
	}
	return nil
}

// GetRider fetches a rider row by id.
func (s *Store) GetRider(ctx context.Context, riderID string) (*Rider, error) {
	query := `SELECT rider_id, username, phone_number FROM riders WHERE rider_id = $1`
	var r Rider
	err := s.db.QueryRowContext(ctx, query, riderID).Scan(&r.RiderID, &r.Username, &r.PhoneNumber)
	if err == sql.ErrNoRows {
		return nil, apperr.New(apperr.KindNotFound, "rider not found: "+riderID)
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.KindTransport, "failed to get rider", err)
	}
	return &r, nil
}

// isUniqueViolation reports whether err is a PostgreSQL unique_violation
// (SQLSTATE 23505), the code raised on a duplicate order_id/rider_id insert.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}
