package services

import (
	"context"
	"time"

	"storefront-service/apperrors"
	"storefront-service/identity"
	"storefront-service/models"
	"storefront-service/repository"

	"go.uber.org/zap"
)

// CartService defines the cart operations offered to controllers. Add, remove
// and clear report a missing cart as apperrors.ErrNotFound.
type CartService interface {
	GetAllCarts(ctx context.Context) (*models.CartCollection, error)
	GetCartByID(ctx context.Context, id int) (*models.Cart, error)
	CreateCart(ctx context.Context, input *models.CartInput) (*models.Cart, error)
	UpdateCart(ctx context.Context, id int, patch *models.CartPatch) (*models.Cart, error)
	DeleteCart(ctx context.Context, id int) (bool, error)
	AddToCart(ctx context.Context, cartID int, item models.Product) (*models.Cart, error)
	RemoveFromCart(ctx context.Context, cartID, productID int) (*models.Cart, error)
	ClearCart(ctx context.Context, cartID int) (*models.Cart, error)
}

type cartServiceImpl struct {
	repo          repository.CartRepo
	locker        CartLocker
	events        *CartEventPublisher
	defaultUserID int
	logger        *zap.Logger
	now           func() time.Time
}

// NewCartService creates a new CartService. A nil locker defaults to a
// LocalCartLocker; a nil events publisher disables events.
func NewCartService(
	repo repository.CartRepo,
	locker CartLocker,
	events *CartEventPublisher,
	defaultUserID int,
	logger *zap.Logger,
) CartService {
	if locker == nil {
		locker = NewLocalCartLocker()
	}
	return &cartServiceImpl{
		repo:          repo,
		locker:        locker,
		events:        events,
		defaultUserID: defaultUserID,
		logger:        logger,
		now:           time.Now,
	}
}

func (s *cartServiceImpl) GetAllCarts(ctx context.Context) (*models.CartCollection, error) {
	return s.repo.ListAll(ctx)
}

func (s *cartServiceImpl) GetCartByID(ctx context.Context, id int) (*models.Cart, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *cartServiceImpl) CreateCart(ctx context.Context, input *models.CartInput) (*models.Cart, error) {
	return s.repo.Create(ctx, input)
}

func (s *cartServiceImpl) UpdateCart(ctx context.Context, id int, patch *models.CartPatch) (*models.Cart, error) {
	return s.repo.Update(ctx, id, patch)
}

func (s *cartServiceImpl) DeleteCart(ctx context.Context, id int) (bool, error) {
	return s.repo.Delete(ctx, id)
}

// AddToCart merges item into the cart: an existing line item with the same
// product id gains item.Quantity, otherwise item is appended.
func (s *cartServiceImpl) AddToCart(ctx context.Context, cartID int, item models.Product) (*models.Cart, error) {
	unlock, err := s.locker.Lock(ctx, cartID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	cart, err := s.repo.GetByID(ctx, cartID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, cartNotFound()
	}

	items := mergeLineItem(cart.Products, item)
	updated, err := s.repo.Update(ctx, cartID, &models.CartPatch{Products: items})
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, cartNotFound()
	}

	s.logger.Info("Item added to cart",
		zap.Int("cart_id", cartID),
		zap.Int("product_id", item.ID),
		zap.Int("quantity", item.Quantity),
	)
	s.publish(ctx, models.CartEvent{
		EventType: models.CartEventItemAdded,
		CartID:    cartID,
		UserID:    identity.UserID(ctx, s.defaultUserID),
		ProductID: item.ID,
		Quantity:  item.Quantity,
		ItemCount: len(updated.Products),
	})
	return updated, nil
}

// RemoveFromCart drops every line item whose product id is productID.
func (s *cartServiceImpl) RemoveFromCart(ctx context.Context, cartID, productID int) (*models.Cart, error) {
	unlock, err := s.locker.Lock(ctx, cartID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	cart, err := s.repo.GetByID(ctx, cartID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, cartNotFound()
	}

	items := filterLineItems(cart.Products, productID)
	updated, err := s.repo.Update(ctx, cartID, &models.CartPatch{Products: items})
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, cartNotFound()
	}

	s.logger.Info("Item removed from cart", zap.Int("cart_id", cartID), zap.Int("product_id", productID))
	s.publish(ctx, models.CartEvent{
		EventType: models.CartEventItemRemoved,
		CartID:    cartID,
		UserID:    identity.UserID(ctx, s.defaultUserID),
		ProductID: productID,
		ItemCount: len(updated.Products),
	})
	return updated, nil
}

// ClearCart replaces the whole cart with an empty one owned by the caller.
func (s *cartServiceImpl) ClearCart(ctx context.Context, cartID int) (*models.Cart, error) {
	unlock, err := s.locker.Lock(ctx, cartID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	userID := identity.UserID(ctx, s.defaultUserID)
	date := models.ISODate(s.now())
	updated, err := s.repo.Update(ctx, cartID, &models.CartPatch{
		ID:       &cartID,
		UserID:   &userID,
		Date:     &date,
		Products: []models.Product{},
	})
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, cartNotFound()
	}

	s.logger.Info("Cart cleared", zap.Int("cart_id", cartID), zap.Int("user_id", userID))
	s.publish(ctx, models.CartEvent{
		EventType: models.CartEventCleared,
		CartID:    cartID,
		UserID:    userID,
		ItemCount: len(updated.Products),
	})
	return updated, nil
}

func (s *cartServiceImpl) publish(ctx context.Context, event models.CartEvent) {
	event.Timestamp = s.now().UTC()
	s.events.Publish(ctx, event)
}

func cartNotFound() error {
	return apperrors.NotFound("Cart not found")
}

// mergeLineItem returns a new slice; items is never modified.
func mergeLineItem(items []models.Product, item models.Product) []models.Product {
	merged := make([]models.Product, len(items), len(items)+1)
	copy(merged, items)

	for i := range merged {
		if merged[i].ID == item.ID {
			merged[i].Quantity += item.Quantity
			return merged
		}
	}
	return append(merged, item)
}

func filterLineItems(items []models.Product, productID int) []models.Product {
	kept := make([]models.Product, 0, len(items))
	for _, it := range items {
		if it.ID != productID {
			kept = append(kept, it)
		}
	}
	return kept
}
