package service

import (
	"context"
	"log/slog"

	"github.com/AmanPardeshi01/Revcart-Microservice/internal/domain"
	"github.com/AmanPardeshi01/Revcart-Microservice/internal/event"
	"github.com/AmanPardeshi01/Revcart-Microservice/internal/notify"
	"github.com/AmanPardeshi01/Revcart-Microservice/internal/repository"
	apperrors "github.com/AmanPardeshi01/Revcart-Microservice/pkg/errors"
	pkgvalidator "github.com/AmanPardeshi01/Revcart-Microservice/pkg/validator"
)

// AddProductInput is the product snapshot stored when adding to a wishlist.
type AddProductInput struct {
	ID       string `json:"id" validate:"required"`
	Name     string `json:"name" validate:"required"`
	Price    int64  `json:"price" validate:"gte=0"`
	ImageURL string `json:"image_url"`
	ImageAlt string `json:"image_alt"`
}

// WishlistService manages per-user wishlists. Mutations persist first and
// emit notifications and events after the write succeeds.
type WishlistService struct {
	repo     repository.WishlistRepository
	notifier *notify.Center
	producer *event.Producer
	logger   *slog.Logger
}

// NewWishlistService creates a wishlist service. producer may be nil when
// no event bus is configured.
func NewWishlistService(repo repository.WishlistRepository, notifier *notify.Center, producer *event.Producer, logger *slog.Logger) *WishlistService {
	return &WishlistService{
		repo:     repo,
		notifier: notifier,
		producer: producer,
		logger:   logger,
	}
}

// Get returns the user's wishlist, empty when nothing is stored.
func (s *WishlistService) Get(ctx context.Context, userID string) (*domain.Wishlist, error) {
	if userID == "" {
		return nil, apperrors.Unauthorized("user identity is required")
	}
	return s.repo.Get(ctx, userID)
}

// Add appends a product to the wishlist. Adding a product that is already
// present leaves the wishlist unchanged and emits nothing.
func (s *WishlistService) Add(ctx context.Context, userID string, input AddProductInput) (*domain.Wishlist, error) {
	if userID == "" {
		return nil, apperrors.Unauthorized("user identity is required")
	}
	if err := pkgvalidator.Validate(input); err != nil {
		return nil, err
	}

	wishlist, err := s.repo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	product := domain.ProductRef{
		ID:       input.ID,
		Name:     input.Name,
		Price:    input.Price,
		ImageURL: input.ImageURL,
		ImageAlt: input.ImageAlt,
	}

	if !wishlist.Add(product) {
		return wishlist, nil
	}

	if err := s.repo.Save(ctx, wishlist); err != nil {
		return nil, err
	}

	s.notifier.Success(ctx, "Added to Wishlist", product.Name+" added to wishlist")
	s.publishUpdated(ctx, wishlist)

	return wishlist, nil
}

// Remove deletes a product from the wishlist. Removing a product that is
// not present leaves the wishlist unchanged.
func (s *WishlistService) Remove(ctx context.Context, userID, productID string) (*domain.Wishlist, error) {
	if userID == "" {
		return nil, apperrors.Unauthorized("user identity is required")
	}
	if productID == "" {
		return nil, apperrors.InvalidInput("product id is required")
	}

	wishlist, err := s.repo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !wishlist.Remove(productID) {
		return wishlist, nil
	}

	if err := s.repo.Save(ctx, wishlist); err != nil {
		return nil, err
	}

	s.publishUpdated(ctx, wishlist)

	return wishlist, nil
}

// Contains reports whether a product is on the user's wishlist.
func (s *WishlistService) Contains(ctx context.Context, userID, productID string) (bool, error) {
	if userID == "" {
		return false, apperrors.Unauthorized("user identity is required")
	}

	wishlist, err := s.repo.Get(ctx, userID)
	if err != nil {
		return false, err
	}

	return wishlist.Contains(productID), nil
}

// Clear removes every product from the user's wishlist.
func (s *WishlistService) Clear(ctx context.Context, userID string) error {
	if userID == "" {
		return apperrors.Unauthorized("user identity is required")
	}

	if err := s.repo.Delete(ctx, userID); err != nil {
		return err
	}

	if s.producer != nil {
		if err := s.producer.PublishWishlistCleared(ctx, userID); err != nil {
			s.logger.ErrorContext(ctx, "failed to publish wishlist cleared event",
				slog.String("user_id", userID),
				slog.String("error", err.Error()),
			)
		}
	}

	return nil
}

// publishUpdated emits the wishlist.updated event. Publish failures are
// logged, never surfaced: the write already succeeded.
func (s *WishlistService) publishUpdated(ctx context.Context, wishlist *domain.Wishlist) {
	if s.producer == nil {
		return
	}
	if err := s.producer.PublishWishlistUpdated(ctx, wishlist); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish wishlist updated event",
			slog.String("user_id", wishlist.UserID),
			slog.String("error", err.Error()),
		)
	}
}
