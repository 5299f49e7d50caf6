package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AmanPardeshi01/Revcart-Microservice/internal/domain"
	"github.com/AmanPardeshi01/Revcart-Microservice/pkg/database"
	apperrors "github.com/AmanPardeshi01/Revcart-Microservice/pkg/errors"
)

func newTestRepo(t *testing.T) (*CheckoutRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := database.NewMockPool()
	require.NoError(t, err)
	repo := NewCheckoutRepository(mock)
	return repo, mock
}

func sampleSession() *domain.CheckoutSession {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &domain.CheckoutSession{
		ID:     "session-001",
		UserID: "user-001",
		Status: domain.StatusReady,
		Draft: domain.Draft{
			FullName:      "Asha Rao",
			Phone:         "9876543210",
			AddressLine:   "12 MG Road",
			City:          "Pune",
			State:         "MH",
			PostalCode:    "411001",
			Country:       "India",
			PaymentMethod: domain.PaymentCard,
		},
		Addresses: []domain.Address{
			{ID: "5", Line1: "12 MG Road", City: "Pune", State: "MH", PostalCode: "411001", Country: "India", PrimaryAddress: true},
		},
		SelectedAddressID: "5",
		CartTotal:         12000,
		CartItemCount:     3,
		DeliveryFee:       599,
		GrandTotal:        12599,
		ExpiresAt:         now.Add(30 * time.Minute),
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

func testColumns() []string {
	return []string{
		"id", "user_id", "status", "draft", "addresses", "selected_address_id",
		"cart_total", "cart_item_count", "delivery_fee", "grand_total",
		"order_id", "order_amount", "failure_reason",
		"expires_at", "created_at", "updated_at",
	}
}

func sessionRow(t *testing.T, s *domain.CheckoutSession) []any {
	t.Helper()

	draftJSON, err := json.Marshal(s.Draft)
	require.NoError(t, err)
	addressesJSON, err := json.Marshal(s.Addresses)
	require.NoError(t, err)

	var selectedAddressID, orderID, failureReason *string
	if s.SelectedAddressID != "" {
		v := s.SelectedAddressID
		selectedAddressID = &v
	}
	if s.OrderID != "" {
		v := s.OrderID
		orderID = &v
	}
	if s.FailureReason != "" {
		v := s.FailureReason
		failureReason = &v
	}

	return []any{
		s.ID, s.UserID, s.Status, draftJSON, addressesJSON, selectedAddressID,
		s.CartTotal, s.CartItemCount, s.DeliveryFee, s.GrandTotal,
		orderID, s.OrderAmount, failureReason,
		s.ExpiresAt, s.CreatedAt, s.UpdatedAt,
	}
}

func strPtr(s string) *string {
	return &s
}

func TestCheckoutRepository_Create_Success(t *testing.T) {
	repo, mock := newTestRepo(t)
	defer mock.Close()

	s := sampleSession()

	draftJSON, err := json.Marshal(s.Draft)
	require.NoError(t, err)
	addressesJSON, err := json.Marshal(s.Addresses)
	require.NoError(t, err)

	mock.ExpectExec("INSERT INTO checkout_sessions").
		WithArgs(
			s.ID, s.UserID, s.Status, draftJSON, addressesJSON, strPtr(s.SelectedAddressID),
			s.CartTotal, s.CartItemCount, s.DeliveryFee, s.GrandTotal,
			(*string)(nil), s.OrderAmount, (*string)(nil),
			s.ExpiresAt, s.CreatedAt, s.UpdatedAt,
		).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err = repo.Create(context.Background(), s)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckoutRepository_GetByID_Success(t *testing.T) {
	repo, mock := newTestRepo(t)
	defer mock.Close()

	s := sampleSession()

	mock.ExpectQuery("SELECT (.+) FROM checkout_sessions").
		WithArgs(s.ID).
		WillReturnRows(pgxmock.NewRows(testColumns()).AddRow(sessionRow(t, s)...))

	got, err := repo.GetByID(context.Background(), s.ID)
	require.NoError(t, err)
	assert.Equal(t, s.ID, got.ID)
	assert.Equal(t, s.Draft, got.Draft)
	assert.Equal(t, s.Addresses, got.Addresses)
	assert.Equal(t, "5", got.SelectedAddressID)
	assert.Equal(t, int64(12599), got.GrandTotal)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckoutRepository_GetByID_NotFound(t *testing.T) {
	repo, mock := newTestRepo(t)
	defer mock.Close()

	mock.ExpectQuery("SELECT (.+) FROM checkout_sessions").
		WithArgs("missing").
		WillReturnRows(pgxmock.NewRows(testColumns()))

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckoutRepository_Update(t *testing.T) {
	t.Run("applied", func(t *testing.T) {
		repo, mock := newTestRepo(t)
		defer mock.Close()

		s := sampleSession()

		mock.ExpectExec("UPDATE checkout_sessions").
			WithArgs(
				pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
				pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
				pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
				pgxmock.AnyArg(), pgxmock.AnyArg(), s.ID, domain.StatusReady,
			).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		err := repo.Update(context.Background(), s, domain.StatusReady)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("status moved on", func(t *testing.T) {
		repo, mock := newTestRepo(t)
		defer mock.Close()

		s := sampleSession()

		mock.ExpectExec("UPDATE checkout_sessions").
			WithArgs(
				pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
				pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
				pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
				pgxmock.AnyArg(), pgxmock.AnyArg(), s.ID, domain.StatusReady,
			).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		err := repo.Update(context.Background(), s, domain.StatusReady)

		var appErr *apperrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "CONFLICT", appErr.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCheckoutRepository_TransitionStatus(t *testing.T) {
	t.Run("applied", func(t *testing.T) {
		repo, mock := newTestRepo(t)
		defer mock.Close()

		mock.ExpectExec("UPDATE checkout_sessions").
			WithArgs("session-001", domain.StatusReady, domain.StatusSubmitting, pgxmock.AnyArg()).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		ok, err := repo.TransitionStatus(context.Background(), "session-001", domain.StatusReady, domain.StatusSubmitting)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("lost the race", func(t *testing.T) {
		repo, mock := newTestRepo(t)
		defer mock.Close()

		mock.ExpectExec("UPDATE checkout_sessions").
			WithArgs("session-001", domain.StatusReady, domain.StatusSubmitting, pgxmock.AnyArg()).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		ok, err := repo.TransitionStatus(context.Background(), "session-001", domain.StatusReady, domain.StatusSubmitting)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("exec error", func(t *testing.T) {
		repo, mock := newTestRepo(t)
		defer mock.Close()

		mock.ExpectExec("UPDATE checkout_sessions").
			WithArgs("session-001", domain.StatusReady, domain.StatusSubmitting, pgxmock.AnyArg()).
			WillReturnError(errors.New("connection reset"))

		_, err := repo.TransitionStatus(context.Background(), "session-001", domain.StatusReady, domain.StatusSubmitting)
		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCheckoutRepository_GetActiveByUserID(t *testing.T) {
	repo, mock := newTestRepo(t)
	defer mock.Close()

	s := sampleSession()

	mock.ExpectQuery("SELECT (.+) FROM checkout_sessions").
		WithArgs(s.UserID).
		WillReturnRows(pgxmock.NewRows(testColumns()).AddRow(sessionRow(t, s)...))

	got, err := repo.GetActiveByUserID(context.Background(), s.UserID)
	require.NoError(t, err)
	assert.Equal(t, s.ID, got.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
