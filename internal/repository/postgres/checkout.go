package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/AmanPardeshi01/Revcart-Microservice/internal/domain"
	"github.com/AmanPardeshi01/Revcart-Microservice/pkg/database"
	apperrors "github.com/AmanPardeshi01/Revcart-Microservice/pkg/errors"
)

const sessionColumns = `id, user_id, status, draft, addresses, selected_address_id,
		cart_total, cart_item_count, delivery_fee, grand_total,
		order_id, order_amount, failure_reason,
		expires_at, created_at, updated_at`

// CheckoutRepository implements repository.CheckoutRepository using PostgreSQL.
type CheckoutRepository struct {
	db database.DBTX
}

// NewCheckoutRepository creates a PostgreSQL-backed checkout repository.
func NewCheckoutRepository(db database.DBTX) *CheckoutRepository {
	return &CheckoutRepository{db: db}
}

// Create inserts a new checkout session.
func (r *CheckoutRepository) Create(ctx context.Context, session *domain.CheckoutSession) error {
	draftJSON, addressesJSON, err := marshalFields(session)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO checkout_sessions (
			id, user_id, status, draft, addresses, selected_address_id,
			cart_total, cart_item_count, delivery_fee, grand_total,
			order_id, order_amount, failure_reason,
			expires_at, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6,
			$7, $8, $9, $10,
			$11, $12, $13,
			$14, $15, $16
		)`

	_, err = r.db.Exec(ctx, query,
		session.ID,
		session.UserID,
		session.Status,
		draftJSON,
		addressesJSON,
		nullableString(session.SelectedAddressID),
		session.CartTotal,
		session.CartItemCount,
		session.DeliveryFee,
		session.GrandTotal,
		nullableString(session.OrderID),
		session.OrderAmount,
		nullableString(session.FailureReason),
		session.ExpiresAt,
		session.CreatedAt,
		session.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert checkout session: %w", err)
	}

	return nil
}

// GetByID retrieves a checkout session by its ID.
func (r *CheckoutRepository) GetByID(ctx context.Context, id string) (*domain.CheckoutSession, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM checkout_sessions
		WHERE id = $1`

	return r.scanSession(ctx, query, id)
}

// Update persists the full session state, but only while the stored status
// still equals fromStatus. A zero-row write means the session was moved on
// by a concurrent request (or no longer exists) and surfaces as a conflict.
func (r *CheckoutRepository) Update(ctx context.Context, session *domain.CheckoutSession, fromStatus string) error {
	draftJSON, addressesJSON, err := marshalFields(session)
	if err != nil {
		return err
	}

	session.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE checkout_sessions
		SET status = $1, draft = $2, addresses = $3, selected_address_id = $4,
			cart_total = $5, cart_item_count = $6, delivery_fee = $7, grand_total = $8,
			order_id = $9, order_amount = $10, failure_reason = $11,
			expires_at = $12, updated_at = $13
		WHERE id = $14 AND status = $15`

	ct, err := r.db.Exec(ctx, query,
		session.Status,
		draftJSON,
		addressesJSON,
		nullableString(session.SelectedAddressID),
		session.CartTotal,
		session.CartItemCount,
		session.DeliveryFee,
		session.GrandTotal,
		nullableString(session.OrderID),
		session.OrderAmount,
		nullableString(session.FailureReason),
		session.ExpiresAt,
		session.UpdatedAt,
		session.ID,
		fromStatus,
	)
	if err != nil {
		return fmt.Errorf("update checkout session: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.Conflict("checkout session was modified concurrently")
	}

	return nil
}

// TransitionStatus atomically moves a session from one status to another.
// It returns false without error when the session is no longer in the
// expected status, which callers use to fence concurrent submissions.
func (r *CheckoutRepository) TransitionStatus(ctx context.Context, id, from, to string) (bool, error) {
	query := `
		UPDATE checkout_sessions
		SET status = $3, updated_at = $4
		WHERE id = $1 AND status = $2`

	ct, err := r.db.Exec(ctx, query, id, from, to, time.Now().UTC())
	if err != nil {
		return false, fmt.Errorf("transition checkout session status: %w", err)
	}

	return ct.RowsAffected() == 1, nil
}

// GetActiveByUserID retrieves the most recent non-terminal session for a user.
func (r *CheckoutRepository) GetActiveByUserID(ctx context.Context, userID string) (*domain.CheckoutSession, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM checkout_sessions
		WHERE user_id = $1 AND status NOT IN ('completed', 'failed', 'expired')
		ORDER BY created_at DESC
		LIMIT 1`

	return r.scanSession(ctx, query, userID)
}

func (r *CheckoutRepository) scanSession(ctx context.Context, query string, args ...any) (*domain.CheckoutSession, error) {
	var (
		session           domain.CheckoutSession
		draftJSON         []byte
		addressesJSON     []byte
		selectedAddressID *string
		orderID           *string
		failureReason     *string
	)

	err := r.db.QueryRow(ctx, query, args...).Scan(
		&session.ID,
		&session.UserID,
		&session.Status,
		&draftJSON,
		&addressesJSON,
		&selectedAddressID,
		&session.CartTotal,
		&session.CartItemCount,
		&session.DeliveryFee,
		&session.GrandTotal,
		&orderID,
		&session.OrderAmount,
		&failureReason,
		&session.ExpiresAt,
		&session.CreatedAt,
		&session.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scan checkout session: %w", err)
	}

	if err := json.Unmarshal(draftJSON, &session.Draft); err != nil {
		return nil, fmt.Errorf("unmarshal draft: %w", err)
	}
	if addressesJSON != nil && string(addressesJSON) != "null" {
		if err := json.Unmarshal(addressesJSON, &session.Addresses); err != nil {
			return nil, fmt.Errorf("unmarshal addresses: %w", err)
		}
	}
	if session.Addresses == nil {
		session.Addresses = []domain.Address{}
	}

	if selectedAddressID != nil {
		session.SelectedAddressID = *selectedAddressID
	}
	if orderID != nil {
		session.OrderID = *orderID
	}
	if failureReason != nil {
		session.FailureReason = *failureReason
	}

	return &session, nil
}

func marshalFields(session *domain.CheckoutSession) (draftJSON, addressesJSON []byte, err error) {
	draftJSON, err = json.Marshal(session.Draft)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal draft: %w", err)
	}

	addressesJSON, err = json.Marshal(session.Addresses)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal addresses: %w", err)
	}

	return draftJSON, addressesJSON, nil
}

// nullableString returns nil for the empty string so empty fields are
// stored as NULL.
func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
