package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/AmanPardeshi01/Revcart-Microservice/internal/domain"
	pkgkafka "github.com/AmanPardeshi01/Revcart-Microservice/pkg/kafka"
)

// Kafka topics for storefront domain events.
const (
	TopicWishlistUpdated     = "storefront.wishlist.updated"
	TopicWishlistCleared     = "storefront.wishlist.cleared"
	TopicCheckoutCompleted   = "storefront.checkout.completed"
	TopicCheckoutFailed      = "storefront.checkout.failed"
	TopicNotificationEmitted = "storefront.notification.emitted"
)

// Aggregate types carried in the event envelope.
const (
	AggregateTypeWishlist     = "wishlist"
	AggregateTypeCheckout     = "checkout_session"
	AggregateTypeNotification = "notification"
)

// SourceStorefront identifies events originating from this service.
const SourceStorefront = "storefront"

// WishlistUpdatedData is the payload for wishlist.updated events.
type WishlistUpdatedData struct {
	UserID     string   `json:"user_id"`
	ProductIDs []string `json:"product_ids"`
	Count      int      `json:"count"`
}

// WishlistClearedData is the payload for wishlist.cleared events.
type WishlistClearedData struct {
	UserID string `json:"user_id"`
}

// CheckoutData is the payload shared by checkout.completed and checkout.failed events.
type CheckoutData struct {
	SessionID     string `json:"session_id"`
	UserID        string `json:"user_id"`
	OrderID       string `json:"order_id,omitempty"`
	PaymentMethod string `json:"payment_method"`
	GrandTotal    int64  `json:"grand_total"`
	FailureReason string `json:"failure_reason,omitempty"`
}

// NotificationEmittedData is the payload for notification.emitted events.
type NotificationEmittedData struct {
	NotificationID string `json:"notification_id"`
	Title          string `json:"title"`
	Description    string `json:"description,omitempty"`
	Severity       string `json:"severity"`
}

// Producer publishes storefront domain events to Kafka.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates an event producer over the shared Kafka producer.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// PublishWishlistUpdated publishes a wishlist.updated event.
func (p *Producer) PublishWishlistUpdated(ctx context.Context, wishlist *domain.Wishlist) error {
	productIDs := make([]string, len(wishlist.Products))
	for i, product := range wishlist.Products {
		productIDs[i] = product.ID
	}

	data := WishlistUpdatedData{
		UserID:     wishlist.UserID,
		ProductIDs: productIDs,
		Count:      wishlist.Count(),
	}

	return p.publish(ctx, TopicWishlistUpdated, wishlist.UserID, AggregateTypeWishlist, data)
}

// PublishWishlistCleared publishes a wishlist.cleared event.
func (p *Producer) PublishWishlistCleared(ctx context.Context, userID string) error {
	return p.publish(ctx, TopicWishlistCleared, userID, AggregateTypeWishlist, WishlistClearedData{UserID: userID})
}

// PublishCheckoutCompleted publishes a checkout.completed event.
func (p *Producer) PublishCheckoutCompleted(ctx context.Context, session *domain.CheckoutSession) error {
	data := CheckoutData{
		SessionID:     session.ID,
		UserID:        session.UserID,
		OrderID:       session.OrderID,
		PaymentMethod: session.Draft.PaymentMethod,
		GrandTotal:    session.GrandTotal,
	}
	return p.publish(ctx, TopicCheckoutCompleted, session.ID, AggregateTypeCheckout, data)
}

// PublishCheckoutFailed publishes a checkout.failed event.
func (p *Producer) PublishCheckoutFailed(ctx context.Context, session *domain.CheckoutSession) error {
	data := CheckoutData{
		SessionID:     session.ID,
		UserID:        session.UserID,
		OrderID:       session.OrderID,
		PaymentMethod: session.Draft.PaymentMethod,
		GrandTotal:    session.GrandTotal,
		FailureReason: session.FailureReason,
	}
	return p.publish(ctx, TopicCheckoutFailed, session.ID, AggregateTypeCheckout, data)
}

// PublishNotificationEmitted publishes a notification.emitted event.
func (p *Producer) PublishNotificationEmitted(ctx context.Context, id, title, description, severity string) error {
	data := NotificationEmittedData{
		NotificationID: id,
		Title:          title,
		Description:    description,
		Severity:       severity,
	}
	return p.publish(ctx, TopicNotificationEmitted, id, AggregateTypeNotification, data)
}

func (p *Producer) publish(ctx context.Context, topic, aggregateID, aggregateType string, data any) error {
	evt, err := pkgkafka.NewEvent(topic, aggregateID, aggregateType, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create %s event: %w", topic, err)
	}

	if err := p.kafka.Publish(ctx, topic, evt); err != nil {
		return fmt.Errorf("publish %s event: %w", topic, err)
	}

	p.logger.DebugContext(ctx, "published event",
		slog.String("topic", topic),
		slog.String("aggregate_id", aggregateID),
	)

	return nil
}
