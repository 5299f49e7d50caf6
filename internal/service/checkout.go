package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/AmanPardeshi01/Revcart-Microservice/internal/domain"
	"github.com/AmanPardeshi01/Revcart-Microservice/internal/event"
	"github.com/AmanPardeshi01/Revcart-Microservice/internal/notify"
	"github.com/AmanPardeshi01/Revcart-Microservice/internal/repository"
	apperrors "github.com/AmanPardeshi01/Revcart-Microservice/pkg/errors"
	"github.com/AmanPardeshi01/Revcart-Microservice/pkg/httpclient"
	pkgvalidator "github.com/AmanPardeshi01/Revcart-Microservice/pkg/validator"
)

// CircuitOpenFallback is the fallback for the downstream circuit breaker.
// When the circuit is open it returns a structured error with a retry hint
// instead of letting the raw ErrCircuitOpen propagate.
func CircuitOpenFallback(_ context.Context, _ error) (*http.Response, error) {
	return nil, apperrors.ServiceUnavailable("downstream service is temporarily unavailable, please retry after 30 seconds")
}

// HTTPDoer is the interface for executing HTTP requests against the
// downstream Revcart services.
type HTTPDoer interface {
	Do(ctx context.Context, req *http.Request) (*http.Response, error)
}

// ServiceURLs are the base URLs of the downstream Revcart services.
type ServiceURLs struct {
	Profile string
	Cart    string
	Order   string
	Payment string
}

// DraftUpdate replaces the editable fields of a checkout draft. Address
// fields are only applied while the session is in new-address mode; for a
// saved address they are derived from the selection and cannot be edited.
type DraftUpdate struct {
	FullName      string `json:"full_name"`
	Phone         string `json:"phone"`
	AddressLine   string `json:"address_line"`
	City          string `json:"city"`
	State         string `json:"state"`
	PostalCode    string `json:"postal_code"`
	Country       string `json:"country"`
	PaymentMethod string `json:"payment_method" validate:"required,oneof=card upi cod"`
}

// CheckoutService orchestrates the checkout flow against the profile, cart,
// order and payment services, persisting each session between requests.
type CheckoutService struct {
	repo        repository.CheckoutRepository
	notifier    *notify.Center
	producer    *event.Producer
	httpClient  HTTPDoer
	urls        ServiceURLs
	deliveryFee int64
	sessionTTL  time.Duration
	logger      *slog.Logger
}

// NewCheckoutService creates a checkout service. producer may be nil when
// no event bus is configured.
func NewCheckoutService(
	repo repository.CheckoutRepository,
	notifier *notify.Center,
	producer *event.Producer,
	httpClient HTTPDoer,
	urls ServiceURLs,
	deliveryFee int64,
	sessionTTL time.Duration,
	logger *slog.Logger,
) *CheckoutService {
	return &CheckoutService{
		repo:        repo,
		notifier:    notifier,
		producer:    producer,
		httpClient:  httpClient,
		urls:        urls,
		deliveryFee: deliveryFee,
		sessionTTL:  sessionTTL,
		logger:      logger,
	}
}

// Start opens a new checkout session for the user. The cart is fetched to
// price the order; the saved addresses are fetched best-effort, so a profile
// service outage degrades to new-address mode instead of blocking checkout.
func (s *CheckoutService) Start(ctx context.Context, contact domain.Contact) (*domain.CheckoutSession, error) {
	if contact.UserID == "" {
		return nil, apperrors.Unauthorized("user identity is required")
	}

	cartTotal, itemCount, err := s.fetchCart(ctx, contact.UserID)
	if err != nil {
		return nil, err
	}

	addresses, err := s.fetchAddresses(ctx, contact.UserID)
	if err != nil {
		s.logger.WarnContext(ctx, "failed to fetch saved addresses, continuing without them",
			slog.String("user_id", contact.UserID),
			slog.String("error", err.Error()),
		)
		addresses = []domain.Address{}
	}

	now := time.Now().UTC()
	session := &domain.CheckoutSession{
		ID:            uuid.New().String(),
		UserID:        contact.UserID,
		Status:        domain.StatusReady,
		Draft:         domain.Draft{PaymentMethod: domain.PaymentCard},
		Addresses:     addresses,
		CartTotal:     cartTotal,
		CartItemCount: itemCount,
		ExpiresAt:     now.Add(s.sessionTTL),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	selection := domain.SelectionNew
	if addr := domain.SelectAddress(addresses); addr != nil {
		selection = addr.ID
	}
	session.ApplySelection(selection, contact)
	session.ApplyTotals(s.deliveryFee)

	if err := s.repo.Create(ctx, session); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "checkout session started",
		slog.String("session_id", session.ID),
		slog.String("user_id", session.UserID),
		slog.Int("addresses", len(addresses)),
		slog.Int64("grand_total", session.GrandTotal),
	)

	return session, nil
}

// Get returns a checkout session, realizing expiry on read.
func (s *CheckoutService) Get(ctx context.Context, userID, sessionID string) (*domain.CheckoutSession, error) {
	session, err := s.loadOwned(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}

	s.realizeExpiry(ctx, session)
	return session, nil
}

// Active returns the user's most recent session that has not finished.
func (s *CheckoutService) Active(ctx context.Context, userID string) (*domain.CheckoutSession, error) {
	if userID == "" {
		return nil, apperrors.Unauthorized("user identity is required")
	}

	session, err := s.repo.GetActiveByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NotFound("checkout_session", "active")
		}
		return nil, err
	}

	s.realizeExpiry(ctx, session)
	return session, nil
}

// SelectAddress changes which address the draft is bound to. The draft's
// address fields are re-derived from the selection and the contact fields
// are re-applied, dropping edits made under the previous selection.
func (s *CheckoutService) SelectAddress(ctx context.Context, userID, sessionID, selection string, contact domain.Contact) (*domain.CheckoutSession, error) {
	session, err := s.editableSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}

	if selection != domain.SelectionNew && domain.FindAddress(session.Addresses, selection) == nil {
		return nil, apperrors.InvalidInput("selected address not found")
	}

	session.ApplySelection(selection, contact)

	if err := s.repo.Update(ctx, session, domain.StatusReady); err != nil {
		return nil, err
	}

	return session, nil
}

// UpdateDraft replaces the editable draft fields.
func (s *CheckoutService) UpdateDraft(ctx context.Context, userID, sessionID string, input DraftUpdate) (*domain.CheckoutSession, error) {
	if err := pkgvalidator.Validate(input); err != nil {
		return nil, err
	}

	session, err := s.editableSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}

	session.Draft.FullName = input.FullName
	session.Draft.Phone = input.Phone
	session.Draft.PaymentMethod = input.PaymentMethod

	if session.NewAddressSelected() {
		session.Draft.AddressLine = input.AddressLine
		session.Draft.City = input.City
		session.Draft.State = input.State
		session.Draft.PostalCode = input.PostalCode
		if input.Country != "" {
			session.Draft.Country = input.Country
		}
	}

	if err := s.repo.Update(ctx, session, domain.StatusReady); err != nil {
		return nil, err
	}

	return session, nil
}

// Submit validates the draft and places the order. The ready-to-submitting
// status transition is a compare-and-set, so of two concurrent submissions
// exactly one places the order; the loser sees the session unchanged.
// Card payments park the session in awaiting_confirmation until
// ConfirmPayment resolves; UPI and COD complete immediately.
func (s *CheckoutService) Submit(ctx context.Context, userID, sessionID string) (*domain.CheckoutSession, error) {
	session, err := s.loadOwned(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}

	if session.IsTerminal() {
		return nil, apperrors.InvalidInput("checkout session is already finished")
	}
	if session.IsExpired() {
		s.markExpired(ctx, session)
		return nil, apperrors.Gone("checkout session has expired")
	}
	if session.Status == domain.StatusSubmitting || session.Status == domain.StatusAwaitingConfirmation {
		// A submission is already in flight; this one is a no-op.
		return session, nil
	}

	ok, err := s.repo.TransitionStatus(ctx, sessionID, domain.StatusReady, domain.StatusSubmitting)
	if err != nil {
		return nil, err
	}
	if !ok {
		// Lost the race to a concurrent submission.
		return s.loadOwned(ctx, userID, sessionID)
	}
	session.Status = domain.StatusSubmitting

	if session.CartItemCount == 0 {
		s.failSubmission(ctx, session, "your cart is empty")
		s.notifier.Error(ctx, "Checkout", "Your cart is empty.")
		return nil, apperrors.InvalidInput("your cart is empty")
	}

	addressID := session.SelectedAddressID
	if session.NewAddressSelected() {
		if missing := session.ValidateNewAddress(); len(missing) > 0 {
			s.failSubmission(ctx, session, "address is incomplete")
			return nil, apperrors.InvalidInput("address is incomplete: missing " + strings.Join(missing, ", "))
		}

		created, err := s.createAddress(ctx, session)
		if err != nil {
			s.failSubmission(ctx, session, "failed to save address")
			return nil, err
		}
		session.Addresses = append(session.Addresses, *created)
		session.SelectedAddressID = created.ID
		addressID = created.ID
	} else if domain.FindAddress(session.Addresses, addressID) == nil {
		s.failSubmission(ctx, session, "selected address not found")
		return nil, apperrors.InvalidInput("selected address not found")
	}

	orderID, orderAmount, err := s.createOrder(ctx, session, addressID)
	if err != nil {
		s.failSubmission(ctx, session, "failed to place order")
		s.notifier.Error(ctx, "Checkout Failed", "Could not place your order. Please try again.")
		return nil, err
	}
	session.OrderID = orderID
	session.OrderAmount = orderAmount

	if session.Draft.PaymentMethod == domain.PaymentCard {
		session.Status = domain.StatusAwaitingConfirmation
		session.FailureReason = ""
		if err := s.repo.Update(ctx, session, domain.StatusSubmitting); err != nil {
			return nil, err
		}

		s.logger.InfoContext(ctx, "order placed, awaiting payment confirmation",
			slog.String("session_id", session.ID),
			slog.String("order_id", session.OrderID),
		)
		return session, nil
	}

	if err := s.complete(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// ConfirmPayment resolves a card payment that was parked by Submit. A
// declined confirmation fails the session; the order itself remains with
// the order service. An approved confirmation runs the payment and, when
// the payment service rejects it, returns the session to
// awaiting_confirmation so the user can retry.
func (s *CheckoutService) ConfirmPayment(ctx context.Context, userID, sessionID string, approved bool) (*domain.CheckoutSession, error) {
	session, err := s.loadOwned(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}

	if session.Status != domain.StatusAwaitingConfirmation {
		return nil, apperrors.InvalidInput("no payment awaiting confirmation")
	}
	if session.IsExpired() {
		s.markExpired(ctx, session)
		return nil, apperrors.Gone("checkout session has expired")
	}

	if !approved {
		session.Status = domain.StatusFailed
		session.FailureReason = "payment cancelled"
		if err := s.repo.Update(ctx, session, domain.StatusAwaitingConfirmation); err != nil {
			return nil, err
		}

		s.notifier.Error(ctx, "Payment", "Payment cancelled")
		s.publishFailed(ctx, session)
		return session, nil
	}

	ok, err := s.repo.TransitionStatus(ctx, sessionID, domain.StatusAwaitingConfirmation, domain.StatusSubmitting)
	if err != nil {
		return nil, err
	}
	if !ok {
		// A concurrent confirmation is already processing the payment.
		return s.loadOwned(ctx, userID, sessionID)
	}
	session.Status = domain.StatusSubmitting

	if err := s.processPayment(ctx, session); err != nil {
		session.Status = domain.StatusAwaitingConfirmation
		session.FailureReason = "payment failed"
		if updateErr := s.repo.Update(ctx, session, domain.StatusSubmitting); updateErr != nil {
			s.logger.ErrorContext(ctx, "failed to restore session after payment failure",
				slog.String("session_id", session.ID),
				slog.String("error", updateErr.Error()),
			)
		}

		s.notifier.Error(ctx, "Payment Failed", "Your payment could not be processed. Please try again.")
		return nil, err
	}

	if err := s.complete(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Cancel abandons the session. Any order already placed stays with the
// order service; the session just records why it ended.
func (s *CheckoutService) Cancel(ctx context.Context, userID, sessionID string) (*domain.CheckoutSession, error) {
	session, err := s.loadOwned(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}

	if session.IsTerminal() {
		return nil, apperrors.InvalidInput("checkout session is already finished")
	}

	prior := session.Status
	reason := "cancelled by user"
	if prior == domain.StatusAwaitingConfirmation {
		reason = "cancelled while awaiting payment confirmation"
	}
	session.Status = domain.StatusFailed
	session.FailureReason = reason
	if err := s.repo.Update(ctx, session, prior); err != nil {
		return nil, err
	}

	s.publishFailed(ctx, session)
	return session, nil
}

// complete clears the cart, marks the session completed and emits the
// success notification and event. A cart clear failure is logged but does
// not fail the order, which has already been placed.
func (s *CheckoutService) complete(ctx context.Context, session *domain.CheckoutSession) error {
	if err := s.clearCart(ctx, session.UserID); err != nil {
		s.logger.WarnContext(ctx, "failed to clear cart after order placement",
			slog.String("session_id", session.ID),
			slog.String("error", err.Error()),
		)
	}

	session.Status = domain.StatusCompleted
	session.FailureReason = ""
	if err := s.repo.Update(ctx, session, domain.StatusSubmitting); err != nil {
		return err
	}

	s.notifier.Success(ctx, "Order Placed", "Your order has been placed successfully!")

	if s.producer != nil {
		if err := s.producer.PublishCheckoutCompleted(ctx, session); err != nil {
			s.logger.ErrorContext(ctx, "failed to publish checkout completed event",
				slog.String("session_id", session.ID),
				slog.String("error", err.Error()),
			)
		}
	}

	s.logger.InfoContext(ctx, "checkout completed",
		slog.String("session_id", session.ID),
		slog.String("order_id", session.OrderID),
		slog.Int64("grand_total", session.GrandTotal),
	)

	return nil
}

// failSubmission returns a session to ready with the failure recorded so
// the user can fix the draft and submit again.
func (s *CheckoutService) failSubmission(ctx context.Context, session *domain.CheckoutSession, reason string) {
	session.Status = domain.StatusReady
	session.FailureReason = reason
	if err := s.repo.Update(ctx, session, domain.StatusSubmitting); err != nil {
		s.logger.ErrorContext(ctx, "failed to restore session after submission failure",
			slog.String("session_id", session.ID),
			slog.String("error", err.Error()),
		)
	}
}

func (s *CheckoutService) publishFailed(ctx context.Context, session *domain.CheckoutSession) {
	if s.producer == nil {
		return
	}
	if err := s.producer.PublishCheckoutFailed(ctx, session); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish checkout failed event",
			slog.String("session_id", session.ID),
			slog.String("error", err.Error()),
		)
	}
}

// loadOwned fetches a session and verifies it belongs to the caller.
func (s *CheckoutService) loadOwned(ctx context.Context, userID, sessionID string) (*domain.CheckoutSession, error) {
	if userID == "" {
		return nil, apperrors.Unauthorized("user identity is required")
	}

	session, err := s.repo.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NotFound("checkout_session", sessionID)
		}
		return nil, err
	}

	if session.UserID != userID {
		return nil, apperrors.Forbidden("checkout session belongs to another user")
	}

	return session, nil
}

// editableSession loads a session and verifies the draft may be changed.
func (s *CheckoutService) editableSession(ctx context.Context, userID, sessionID string) (*domain.CheckoutSession, error) {
	session, err := s.loadOwned(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}

	if session.IsTerminal() {
		return nil, apperrors.InvalidInput("checkout session is already finished")
	}
	if session.IsExpired() {
		s.markExpired(ctx, session)
		return nil, apperrors.Gone("checkout session has expired")
	}
	if session.Status != domain.StatusReady {
		return nil, apperrors.Conflict("checkout session is busy")
	}

	return session, nil
}

// markExpired realizes an expired session's terminal state, best effort.
func (s *CheckoutService) markExpired(ctx context.Context, session *domain.CheckoutSession) {
	ok, err := s.repo.TransitionStatus(ctx, session.ID, session.Status, domain.StatusExpired)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to mark session expired",
			slog.String("session_id", session.ID),
			slog.String("error", err.Error()),
		)
		return
	}
	if ok {
		session.Status = domain.StatusExpired
	}
}

// realizeExpiry flips a stale non-terminal session to expired on read.
func (s *CheckoutService) realizeExpiry(ctx context.Context, session *domain.CheckoutSession) {
	if !session.IsTerminal() && session.IsExpired() {
		s.markExpired(ctx, session)
	}
}

// addressDTO is the profile service's address shape. IDs are decoded as
// json.Number because the backend uses numeric identifiers.
type addressDTO struct {
	ID             json.Number `json:"id,omitempty"`
	Line1          string      `json:"line1"`
	Line2          string      `json:"line2,omitempty"`
	City           string      `json:"city"`
	State          string      `json:"state"`
	PostalCode     string      `json:"postalCode"`
	Country        string      `json:"country"`
	PrimaryAddress bool        `json:"primaryAddress"`
}

func (d addressDTO) toDomain() domain.Address {
	return domain.Address{
		ID:             d.ID.String(),
		Line1:          d.Line1,
		Line2:          d.Line2,
		City:           d.City,
		State:          d.State,
		PostalCode:     d.PostalCode,
		Country:        d.Country,
		PrimaryAddress: d.PrimaryAddress,
	}
}

var numericID = regexp.MustCompile(`^[0-9]+$`)

// idValue renders a stored identifier back into the JSON type the backend
// expects: bare numbers stay numbers, anything else goes out as a string.
func idValue(id string) any {
	if numericID.MatchString(id) {
		return json.Number(id)
	}
	return id
}

// fetchCart loads the user's cart and returns its total and item count.
func (s *CheckoutService) fetchCart(ctx context.Context, userID string) (int64, int, error) {
	type cartItem struct {
		Price    int64 `json:"price"`
		Quantity int   `json:"quantity"`
	}
	type cartData struct {
		Items []cartItem `json:"items"`
	}
	type cartResponse struct {
		Data cartData `json:"data"`
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, s.urls.Cart+"/api/v1/cart", nil)
	if err != nil {
		return 0, 0, fmt.Errorf("create cart request: %w", err)
	}
	httpReq.Header.Set("X-User-Id", userID)

	resp, err := s.httpClient.Do(ctx, httpReq)
	if err != nil {
		return 0, 0, fmt.Errorf("call cart service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, 0, httpclient.ParseResponseError(resp, "cart")
	}

	var cartResp cartResponse
	if err := json.NewDecoder(resp.Body).Decode(&cartResp); err != nil {
		return 0, 0, fmt.Errorf("decode cart response: %w", err)
	}

	var total int64
	var count int
	for _, item := range cartResp.Data.Items {
		total += item.Price * int64(item.Quantity)
		count += item.Quantity
	}

	return total, count, nil
}

// clearCart empties the user's cart after a successful order.
func (s *CheckoutService) clearCart(ctx context.Context, userID string) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodDelete, s.urls.Cart+"/api/v1/cart", nil)
	if err != nil {
		return fmt.Errorf("create clear cart request: %w", err)
	}
	httpReq.Header.Set("X-User-Id", userID)

	resp, err := s.httpClient.Do(ctx, httpReq)
	if err != nil {
		return fmt.Errorf("call cart service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return httpclient.ParseResponseError(resp, "cart")
	}

	return nil
}

// fetchAddresses loads the user's saved addresses from the profile service.
func (s *CheckoutService) fetchAddresses(ctx context.Context, userID string) ([]domain.Address, error) {
	type addressesResponse struct {
		Success bool         `json:"success"`
		Data    []addressDTO `json:"data"`
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, s.urls.Profile+"/profile/addresses", nil)
	if err != nil {
		return nil, fmt.Errorf("create addresses request: %w", err)
	}
	httpReq.Header.Set("X-User-Id", userID)

	resp, err := s.httpClient.Do(ctx, httpReq)
	if err != nil {
		return nil, fmt.Errorf("call profile service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, httpclient.ParseResponseError(resp, "profile")
	}

	var addrResp addressesResponse
	if err := json.NewDecoder(resp.Body).Decode(&addrResp); err != nil {
		return nil, fmt.Errorf("decode addresses response: %w", err)
	}

	addresses := make([]domain.Address, 0, len(addrResp.Data))
	for _, dto := range addrResp.Data {
		addresses = append(addresses, dto.toDomain())
	}

	return addresses, nil
}

// createAddress saves the draft's new address to the profile service and
// returns it with the assigned ID.
func (s *CheckoutService) createAddress(ctx context.Context, session *domain.CheckoutSession) (*domain.Address, error) {
	type createResponse struct {
		Success bool       `json:"success"`
		Data    addressDTO `json:"data"`
	}

	payload := addressDTO{
		Line1:          strings.TrimSpace(session.Draft.AddressLine),
		City:           strings.TrimSpace(session.Draft.City),
		State:          strings.TrimSpace(session.Draft.State),
		PostalCode:     strings.TrimSpace(session.Draft.PostalCode),
		Country:        session.Draft.Country,
		PrimaryAddress: true,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal address request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.urls.Profile+"/profile/addresses", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create address request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-User-Id", session.UserID)

	resp, err := s.httpClient.Do(ctx, httpReq)
	if err != nil {
		return nil, fmt.Errorf("call profile service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, httpclient.ParseResponseError(resp, "profile")
	}

	var createResp createResponse
	if err := json.NewDecoder(resp.Body).Decode(&createResp); err != nil {
		return nil, fmt.Errorf("decode address response: %w", err)
	}

	if createResp.Data.ID.String() == "" {
		return nil, apperrors.Internal(fmt.Errorf("profile service returned address without id"))
	}

	addr := createResp.Data.toDomain()

	s.logger.InfoContext(ctx, "saved new address",
		slog.String("session_id", session.ID),
		slog.String("address_id", addr.ID),
	)

	return &addr, nil
}

// createOrder places the order with the order service and returns the
// order ID and the amount the order service settled on.
func (s *CheckoutService) createOrder(ctx context.Context, session *domain.CheckoutSession, addressID string) (string, int64, error) {
	type createOrderRequest struct {
		AddressID     any    `json:"addressId"`
		PaymentMethod string `json:"paymentMethod"`
	}
	type orderData struct {
		ID          json.Number `json:"id"`
		OrderID     json.Number `json:"orderId"`
		TotalAmount int64       `json:"totalAmount"`
	}
	type createOrderResponse struct {
		Success bool      `json:"success"`
		Data    orderData `json:"data"`
	}

	req := createOrderRequest{
		AddressID:     idValue(addressID),
		PaymentMethod: domain.MapPaymentMethod(session.Draft.PaymentMethod),
	}

	body, err := json.Marshal(req)
	if err != nil {
		return "", 0, fmt.Errorf("marshal order request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.urls.Order+"/orders/checkout", bytes.NewReader(body))
	if err != nil {
		return "", 0, fmt.Errorf("create order request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-User-Id", session.UserID)

	resp, err := s.httpClient.Do(ctx, httpReq)
	if err != nil {
		return "", 0, fmt.Errorf("call order service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", 0, httpclient.ParseResponseError(resp, "order")
	}

	var orderResp createOrderResponse
	if err := json.NewDecoder(resp.Body).Decode(&orderResp); err != nil {
		return "", 0, fmt.Errorf("decode order response: %w", err)
	}

	orderID := orderResp.Data.ID.String()
	if orderID == "" {
		orderID = orderResp.Data.OrderID.String()
	}
	if orderID == "" {
		return "", 0, apperrors.Internal(fmt.Errorf("order service returned order without id"))
	}

	amount := orderResp.Data.TotalAmount
	if amount == 0 {
		amount = session.GrandTotal
	}

	s.logger.InfoContext(ctx, "order created",
		slog.String("session_id", session.ID),
		slog.String("order_id", orderID),
		slog.Int64("amount", amount),
	)

	return orderID, amount, nil
}

// processPayment settles the order with the payment service.
func (s *CheckoutService) processPayment(ctx context.Context, session *domain.CheckoutSession) error {
	type paymentRequest struct {
		OrderID any    `json:"orderId"`
		UserID  any    `json:"userId"`
		Amount  int64  `json:"amount"`
		Method  string `json:"method"`
	}
	type paymentResponse struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}

	req := paymentRequest{
		OrderID: idValue(session.OrderID),
		UserID:  idValue(session.UserID),
		Amount:  session.OrderAmount,
		Method:  domain.MapPaymentMethod(session.Draft.PaymentMethod),
	}

	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("marshal payment request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.urls.Payment+"/payments/process", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create payment request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-User-Id", session.UserID)

	resp, err := s.httpClient.Do(ctx, httpReq)
	if err != nil {
		return fmt.Errorf("call payment service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return httpclient.ParseResponseError(resp, "payment")
	}

	var payResp paymentResponse
	if err := json.NewDecoder(resp.Body).Decode(&payResp); err != nil {
		return fmt.Errorf("decode payment response: %w", err)
	}

	if !payResp.Success {
		msg := payResp.Message
		if msg == "" {
			msg = "payment was not approved"
		}
		return apperrors.PaymentFailed(msg)
	}

	s.logger.InfoContext(ctx, "payment processed",
		slog.String("session_id", session.ID),
		slog.String("order_id", session.OrderID),
	)

	return nil
}
