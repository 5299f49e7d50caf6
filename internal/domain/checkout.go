package domain

import (
	"strings"
	"time"
)

// Checkout session status constants.
const (
	// StatusReady means addresses have been fetched and the draft is editable.
	StatusReady = "ready"
	// StatusSubmitting means a submission is in flight; further submits are
	// no-ops until the session leaves this state.
	StatusSubmitting = "submitting"
	// StatusAwaitingConfirmation means the order exists and the session is
	// suspended until the payment confirmation resolves.
	StatusAwaitingConfirmation = "awaiting_confirmation"
	StatusCompleted            = "completed"
	StatusFailed               = "failed"
	StatusExpired              = "expired"
)

// SelectionNew is the address selection value for "enter a new address".
const SelectionNew = "new"

// Payment method selections accepted from the draft.
const (
	PaymentCard = "card"
	PaymentUPI  = "upi"
	PaymentCOD  = "cod"
)

// Backend payment method enumeration sent to the order service.
const (
	BackendMethodRazorpay = "RAZORPAY"
	BackendMethodUPI      = "UPI"
	BackendMethodCOD      = "COD"
)

// Contact is the authenticated user's identity as supplied by the gateway.
type Contact struct {
	UserID   string `json:"user_id"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
}

// Draft is the in-progress order form. Contact fields are prefilled from the
// authenticated user; address fields mirror the selected saved address or are
// blank in new-address mode.
type Draft struct {
	FullName      string `json:"full_name"`
	Phone         string `json:"phone"`
	AddressLine   string `json:"address_line"`
	City          string `json:"city"`
	State         string `json:"state"`
	PostalCode    string `json:"postal_code"`
	Country       string `json:"country"`
	PaymentMethod string `json:"payment_method"`
}

// CheckoutSession is the persisted state of one checkout attempt.
type CheckoutSession struct {
	ID                string    `json:"id"`
	UserID            string    `json:"user_id"`
	Status            string    `json:"status"`
	Draft             Draft     `json:"draft"`
	Addresses         []Address `json:"addresses"`
	SelectedAddressID string    `json:"selected_address_id"` // SelectionNew for a new address
	CartTotal         int64     `json:"cart_total"`
	CartItemCount     int       `json:"cart_item_count"`
	DeliveryFee       int64     `json:"delivery_fee"`
	GrandTotal        int64     `json:"grand_total"`
	OrderID           string    `json:"order_id,omitempty"`
	OrderAmount       int64     `json:"order_amount,omitempty"`
	FailureReason     string    `json:"failure_reason,omitempty"`
	ExpiresAt         time.Time `json:"expires_at"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// DeliveryFeeFor returns the flat surcharge applied to non-empty carts.
func DeliveryFeeFor(cartTotal, fee int64) int64 {
	if cartTotal > 0 {
		return fee
	}
	return 0
}

// ApplyTotals recomputes the delivery fee and grand total from the cart total.
func (s *CheckoutSession) ApplyTotals(deliveryFee int64) {
	s.DeliveryFee = DeliveryFeeFor(s.CartTotal, deliveryFee)
	s.GrandTotal = s.CartTotal + s.DeliveryFee
}

// ApplySelection re-derives the draft from the chosen address (or blanks the
// address fields for SelectionNew), always re-applying the contact fields so
// edits made under a different address context are not carried over.
func (s *CheckoutSession) ApplySelection(selection string, contact Contact) {
	s.SelectedAddressID = selection
	s.Draft.FullName = contact.FullName
	s.Draft.Phone = contact.Phone

	if selection == SelectionNew {
		s.Draft.AddressLine = ""
		s.Draft.City = ""
		s.Draft.State = ""
		s.Draft.PostalCode = ""
		s.Draft.Country = "India"
		return
	}

	if addr := FindAddress(s.Addresses, selection); addr != nil {
		s.Draft.AddressLine = addr.Line1
		s.Draft.City = addr.City
		s.Draft.State = addr.State
		s.Draft.PostalCode = addr.PostalCode
		s.Draft.Country = addr.Country
	}
}

// NewAddressSelected reports whether the session is in new-address mode.
func (s *CheckoutSession) NewAddressSelected() bool {
	return s.SelectedAddressID == SelectionNew || s.SelectedAddressID == ""
}

// ValidateNewAddress checks the draft's required address fields after
// trimming. Returns the missing field names in draft order.
func (s *CheckoutSession) ValidateNewAddress() []string {
	var missing []string
	if strings.TrimSpace(s.Draft.AddressLine) == "" {
		missing = append(missing, "address_line")
	}
	if strings.TrimSpace(s.Draft.City) == "" {
		missing = append(missing, "city")
	}
	if strings.TrimSpace(s.Draft.State) == "" {
		missing = append(missing, "state")
	}
	if strings.TrimSpace(s.Draft.PostalCode) == "" {
		missing = append(missing, "postal_code")
	}
	return missing
}

// MapPaymentMethod translates the draft's payment selection to the order
// service enumeration. Unrecognized values fall back to COD.
func MapPaymentMethod(method string) string {
	switch method {
	case PaymentCard:
		return BackendMethodRazorpay
	case PaymentUPI:
		return BackendMethodUPI
	default:
		return BackendMethodCOD
	}
}

// IsExpired reports whether the session has passed its expiry.
func (s *CheckoutSession) IsExpired() bool {
	return time.Now().UTC().After(s.ExpiresAt)
}

// IsTerminal reports whether the session has reached a final state.
func (s *CheckoutSession) IsTerminal() bool {
	return s.Status == StatusCompleted || s.Status == StatusFailed || s.Status == StatusExpired
}
