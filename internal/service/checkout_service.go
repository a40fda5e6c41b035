package service

import (
	"context"
	"time"

	"bakehouse-backend/internal/apperr"
	"bakehouse-backend/internal/pricing"
	"bakehouse-backend/internal/repositories"
	"bakehouse-backend/models"
	"bakehouse-backend/pkg/logger"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CreateCheckoutRequest struct {
	ShippingAddress models.ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string                 `json:"paymentMethod"`
}

type PayCheckoutRequest struct {
	Method        string `json:"method"`
	TransactionID string `json:"transactionId"`
}

// WebhookRequest is the server-authoritative gateway callback. It replaces
// the client-driven pay-then-finalize round trip and is idempotent on
// TransactionID.
type WebhookRequest struct {
	CheckoutID    primitive.ObjectID `json:"checkoutId"`
	TransactionID string             `json:"transactionId"`
	Method        string             `json:"method"`
	Status        string             `json:"status"`
}

type CheckoutService struct {
	checkouts   repositories.CheckoutRepository
	carts       repositories.CartRepository
	orders      repositories.OrderRepository
	users       repositories.UserRepository
	products    repositories.ProductRepository
	ingredients repositories.IngredientRepository
	flashSales  repositories.FlashSaleRepository
	logger      *logger.Logger
	now         func() time.Time
}

func NewCheckoutService(
	checkouts repositories.CheckoutRepository,
	carts repositories.CartRepository,
	orders repositories.OrderRepository,
	users repositories.UserRepository,
	products repositories.ProductRepository,
	ingredients repositories.IngredientRepository,
	flashSales repositories.FlashSaleRepository,
	log *logger.Logger,
) *CheckoutService {
	return &CheckoutService{
		checkouts:   checkouts,
		carts:       carts,
		orders:      orders,
		users:       users,
		products:    products,
		ingredients: ingredients,
		flashSales:  flashSales,
		logger:      log.WithComponent("checkout_service"),
		now:         time.Now,
	}
}

// Create snapshots the user's cart into a pending checkout. Prices are
// re-resolved and stock is validated server-side so the client cannot submit
// stale totals.
func (s *CheckoutService) Create(ctx context.Context, userID primitive.ObjectID, req CreateCheckoutRequest) (*models.Checkout, error) {
	if req.ShippingAddress.Name == "" || req.ShippingAddress.Address == "" {
		return nil, apperr.New(apperr.CodeInvalidInput, "shipping name and address are required")
	}
	if req.PaymentMethod == "" {
		return nil, apperr.New(apperr.CodeInvalidInput, "payment method is required")
	}

	cart, err := s.carts.GetByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperr.New(apperr.CodeInvalidInput, "cart is empty")
		}
		return nil, apperr.Wrap(err, apperr.CodeInternal, "loading cart")
	}
	if len(cart.Items) == 0 {
		return nil, apperr.New(apperr.CodeInvalidInput, "cart is empty")
	}

	sales, err := s.flashSales.ListRunning(ctx, s.now())
	if err != nil {
		return nil, apperr.Wrap(err, apperr.CodeInternal, "listing flash sales")
	}

	now := s.now()
	items := make([]models.CartItem, len(cart.Items))
	total := 0
	for i, item := range cart.Items {
		if err := s.checkStock(ctx, item); err != nil {
			return nil, err
		}
		if err := flashSaleAvailable(sales, item, now); err != nil {
			return nil, err
		}
		switch item.ItemType {
		case models.ItemTypeIngredient:
			ingredient, err := s.ingredients.GetByID(ctx, item.ProductID)
			if err != nil {
				return nil, apperr.New(apperr.CodeNotFound, "ingredient %s no longer exists", item.ProductID.Hex())
			}
			item.Price = pricing.ResolveIngredient(ingredient, sales, now).Price
		default:
			product, err := s.products.GetByID(ctx, item.ProductID)
			if err != nil {
				return nil, apperr.New(apperr.CodeNotFound, "product %s no longer exists", item.ProductID.Hex())
			}
			item.Price = pricing.ResolveProduct(product, item.Size, sales, now).Price
		}
		items[i] = item
		total += item.Price * item.Quantity
	}

	checkout := &models.Checkout{
		UserID:          userID,
		Items:           items,
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
		TotalPrice:      total,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.checkouts.Create(ctx, checkout); err != nil {
		return nil, apperr.Wrap(err, apperr.CodeInternal, "creating checkout")
	}
	s.logger.WithField("checkout_id", checkout.ID.Hex()).Info("checkout created")
	return checkout, nil
}

// Pay marks the checkout paid. Retrying the same transaction returns the
// checkout unchanged so gateway retries are harmless; a different transaction
// against a paid checkout is a double payment and is rejected.
func (s *CheckoutService) Pay(ctx context.Context, userID, checkoutID primitive.ObjectID, req PayCheckoutRequest) (*models.Checkout, error) {
	checkout, err := s.getOwned(ctx, userID, checkoutID)
	if err != nil {
		return nil, err
	}
	if checkout.IsPaid {
		if req.TransactionID == "" ||
			(checkout.PaymentDetails != nil && checkout.PaymentDetails.TransactionID == req.TransactionID) {
			return checkout, nil
		}
		return nil, apperr.New(apperr.CodeAlreadyPaid, "checkout is already paid")
	}

	now := s.now()
	txID := req.TransactionID
	if txID == "" {
		txID = uuid.NewString()
	}
	checkout.IsPaid = true
	checkout.PaidAt = &now
	checkout.PaymentDetails = &models.PaymentDetails{
		Method:        firstNonEmpty(req.Method, checkout.PaymentMethod),
		TransactionID: txID,
		PaidAt:        now,
	}
	checkout.UpdatedAt = now
	if err := s.checkouts.Update(ctx, checkout); err != nil {
		return nil, apperr.Wrap(err, apperr.CodeInternal, "saving checkout")
	}
	s.logger.WithField("checkout_id", checkout.ID.Hex()).Info("checkout paid")
	return checkout, nil
}

// Finalize converts a paid checkout into an order, claims flash-sale
// quantities, decrements stock and clears the cart. Finalizing twice returns
// the original order together with ALREADY_PROCESSED instead of creating a
// duplicate.
func (s *CheckoutService) Finalize(ctx context.Context, userID, checkoutID primitive.ObjectID) (*models.Order, error) {
	checkout, err := s.getOwned(ctx, userID, checkoutID)
	if err != nil {
		return nil, err
	}
	return s.finalize(ctx, checkout)
}

func (s *CheckoutService) finalize(ctx context.Context, checkout *models.Checkout) (*models.Order, error) {
	if checkout.IsFinalized {
		if checkout.OrderID != nil {
			if order, err := s.orders.GetByID(ctx, *checkout.OrderID); err == nil {
				return order, apperr.New(apperr.CodeAlreadyProcessed, "checkout already finalized")
			}
		}
		return nil, apperr.New(apperr.CodeAlreadyProcessed, "checkout already finalized")
	}
	if !checkout.IsPaid {
		return nil, apperr.New(apperr.CodeInvalidInput, "checkout is not paid")
	}

	for _, item := range checkout.Items {
		if err := s.checkStock(ctx, item); err != nil {
			return nil, err
		}
	}

	user, err := s.users.GetByID(ctx, checkout.UserID)
	if err != nil {
		return nil, apperr.Wrap(err, apperr.CodeInternal, "loading user")
	}

	now := s.now()
	orderItems := make([]models.OrderItem, len(checkout.Items))
	for i, item := range checkout.Items {
		orderItems[i] = models.OrderItem{
			ProductID: item.ProductID,
			ItemType:  item.ItemType,
			Name:      item.Name,
			Image:     item.Image,
			Price:     item.Price,
			Quantity:  item.Quantity,
			Size:      item.Size,
			Flavor:    item.Flavor,
		}
	}
	order := &models.Order{
		User:            models.OrderUser{ID: user.ID, Name: user.Name, Email: user.Email},
		OrderItems:      orderItems,
		ShippingAddress: checkout.ShippingAddress,
		PaymentMethod:   checkout.PaymentMethod,
		PaymentDetails:  checkout.PaymentDetails,
		TotalPrice:      checkout.TotalPrice,
		IsPaid:          true,
		Status:          models.StatusPending,
		StatusHistory: []models.StatusEntry{{
			Status:    models.StatusPending,
			Note:      "Đơn hàng đã được tạo",
			UpdatedAt: now,
		}},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, apperr.Wrap(err, apperr.CodeInternal, "creating order")
	}

	s.claimFlashSales(ctx, checkout.Items)
	s.consumeStock(ctx, checkout.Items)

	if err := s.carts.ClearUser(ctx, checkout.UserID); err != nil {
		s.logger.WithError(err).Warn("failed to clear cart after finalize")
	}

	checkout.IsFinalized = true
	checkout.FinalizedAt = &now
	checkout.OrderID = &order.ID
	checkout.UpdatedAt = now
	if err := s.checkouts.Update(ctx, checkout); err != nil {
		return nil, apperr.Wrap(err, apperr.CodeInternal, "stamping checkout")
	}

	s.logger.WithField("order_id", order.ID.Hex()).Info("checkout finalized")
	return order, nil
}

// HandleWebhook performs pay + finalize in one server-side step. A repeated
// delivery of the same transaction returns the existing order without
// touching state.
func (s *CheckoutService) HandleWebhook(ctx context.Context, req WebhookRequest) (*models.Order, error) {
	if req.TransactionID == "" {
		return nil, apperr.New(apperr.CodeInvalidInput, "transactionId is required")
	}
	if req.Status != "" && req.Status != "success" {
		return nil, apperr.New(apperr.CodeInvalidInput, "payment was not successful")
	}

	// Idempotency: a checkout already carrying this transaction id has been
	// processed by an earlier delivery.
	if existing, err := s.checkouts.GetByTransactionID(ctx, req.TransactionID); err == nil {
		if existing.IsFinalized && existing.OrderID != nil {
			return s.orders.GetByID(ctx, *existing.OrderID)
		}
	}

	checkout, err := s.checkouts.GetByID(ctx, req.CheckoutID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperr.New(apperr.CodeCheckoutNotFound, "checkout not found")
		}
		return nil, apperr.Wrap(err, apperr.CodeInternal, "loading checkout")
	}

	if !checkout.IsPaid {
		now := s.now()
		checkout.IsPaid = true
		checkout.PaidAt = &now
		checkout.PaymentDetails = &models.PaymentDetails{
			Method:        firstNonEmpty(req.Method, checkout.PaymentMethod),
			TransactionID: req.TransactionID,
			PaidAt:        now,
		}
		checkout.UpdatedAt = now
		if err := s.checkouts.Update(ctx, checkout); err != nil {
			return nil, apperr.Wrap(err, apperr.CodeInternal, "saving checkout")
		}
	}

	order, err := s.finalize(ctx, checkout)
	if err != nil && apperr.CodeOf(err) == apperr.CodeAlreadyProcessed && order != nil {
		return order, nil
	}
	return order, err
}

func (s *CheckoutService) PendingByUser(ctx context.Context, userID primitive.ObjectID) (*models.Checkout, error) {
	checkout, err := s.checkouts.GetPendingByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperr.New(apperr.CodeCheckoutNotFound, "no pending checkout")
		}
		return nil, apperr.Wrap(err, apperr.CodeInternal, "loading checkout")
	}
	return checkout, nil
}

func (s *CheckoutService) getOwned(ctx context.Context, userID, checkoutID primitive.ObjectID) (*models.Checkout, error) {
	checkout, err := s.checkouts.GetByID(ctx, checkoutID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperr.New(apperr.CodeCheckoutNotFound, "checkout not found")
		}
		return nil, apperr.Wrap(err, apperr.CodeInternal, "loading checkout")
	}
	if checkout.UserID != userID {
		return nil, apperr.New(apperr.CodeForbidden, "checkout belongs to another user")
	}
	return checkout, nil
}

func (s *CheckoutService) checkStock(ctx context.Context, item models.CartItem) error {
	switch item.ItemType {
	case models.ItemTypeIngredient:
		ingredient, err := s.ingredients.GetByID(ctx, item.ProductID)
		if err != nil {
			return apperr.New(apperr.CodeNotFound, "ingredient %s no longer exists", item.ProductID.Hex())
		}
		if ingredient.Quantity < item.Quantity {
			return apperr.New(apperr.CodeInsufficientStock, "%s: requested %d, only %d available", ingredient.Name, item.Quantity, ingredient.Quantity)
		}
	default:
		product, err := s.products.GetByID(ctx, item.ProductID)
		if err != nil {
			return apperr.New(apperr.CodeNotFound, "product %s no longer exists", item.ProductID.Hex())
		}
		if product.Quantity < item.Quantity {
			return apperr.New(apperr.CodeInsufficientStock, "%s: requested %d, only %d available", product.Name, item.Quantity, product.Quantity)
		}
	}
	return nil
}

// claimFlashSales increments soldQuantity for lines still covered by a
// running sale. Lines without enough remaining quantity are skipped: the
// checkout price stands, the sale just stops counting.
func (s *CheckoutService) claimFlashSales(ctx context.Context, items []models.CartItem) {
	now := s.now()
	sales, err := s.flashSales.ListRunning(ctx, now)
	if err != nil {
		s.logger.WithError(err).Warn("failed to list flash sales for claim")
		return
	}
	for _, item := range items {
		for i := range sales {
			line := sales[i].Line(item.ProductID, item.ItemType)
			if line == nil || line.SoldQuantity+item.Quantity > line.Quantity {
				continue
			}
			if err := s.flashSales.IncrementSold(ctx, sales[i].ID, item.ProductID, item.ItemType, item.Quantity); err != nil {
				s.logger.WithError(err).Warn("failed to claim flash sale quantity")
			}
			break
		}
	}
}

func (s *CheckoutService) consumeStock(ctx context.Context, items []models.CartItem) {
	for _, item := range items {
		var err error
		switch item.ItemType {
		case models.ItemTypeIngredient:
			err = s.ingredients.AdjustQuantity(ctx, item.ProductID, -item.Quantity)
		default:
			err = s.products.AdjustQuantity(ctx, item.ProductID, -item.Quantity)
		}
		if err != nil {
			s.logger.WithError(err).WithField("item_id", item.ProductID.Hex()).Warn("failed to decrement stock")
		}
	}
}

// flashSaleAvailable rejects a line whose quantity exceeds what a covering
// running sale still has left. Fully sold-out lines pass: the sale no longer
// prices them, so the regular price applies instead.
func flashSaleAvailable(sales []models.FlashSale, item models.CartItem, now time.Time) error {
	itemType := item.ItemType
	if itemType == "" {
		itemType = models.ItemTypeProduct
	}
	line := pricing.ActiveLine(sales, item.ProductID, itemType, now)
	if line != nil && item.Quantity > line.Quantity-line.SoldQuantity {
		return apperr.New(apperr.CodeFlashSaleSoldOut, "%s: flash sale has only %d left", item.Name, line.Quantity-line.SoldQuantity)
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
