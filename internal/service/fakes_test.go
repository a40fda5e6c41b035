package service

import (
	"context"
	"time"

	"bakehouse-backend/internal/repositories"
	"bakehouse-backend/models"
	"bakehouse-backend/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func testLogger() *logger.Logger {
	return logger.New("panic", "text")
}

type fakeProductRepo struct {
	products map[primitive.ObjectID]*models.Product
}

func newFakeProductRepo(products ...*models.Product) *fakeProductRepo {
	repo := &fakeProductRepo{products: make(map[primitive.ObjectID]*models.Product)}
	for _, p := range products {
		repo.products[p.ID] = p
	}
	return repo
}

func (r *fakeProductRepo) Create(_ context.Context, product *models.Product) error {
	if product.ID.IsZero() {
		product.ID = primitive.NewObjectID()
	}
	r.products[product.ID] = product
	return nil
}

func (r *fakeProductRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.Product, error) {
	if p, ok := r.products[id]; ok {
		copied := *p
		return &copied, nil
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeProductRepo) List(_ context.Context, _ repositories.CatalogFilter) ([]models.Product, error) {
	out := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, *p)
	}
	return out, nil
}

func (r *fakeProductRepo) Update(_ context.Context, id primitive.ObjectID, product *models.Product) error {
	if _, ok := r.products[id]; !ok {
		return repositories.ErrNotFound
	}
	product.ID = id
	r.products[id] = product
	return nil
}

func (r *fakeProductRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := r.products[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.products, id)
	return nil
}

func (r *fakeProductRepo) AdjustQuantity(_ context.Context, id primitive.ObjectID, delta int) error {
	p, ok := r.products[id]
	if !ok {
		return repositories.ErrNotFound
	}
	p.Quantity += delta
	return nil
}

func (r *fakeProductRepo) SetRating(_ context.Context, id primitive.ObjectID, rating float64, numReviews int) error {
	p, ok := r.products[id]
	if !ok {
		return repositories.ErrNotFound
	}
	p.Rating = rating
	p.NumReviews = numReviews
	return nil
}

type fakeIngredientRepo struct {
	ingredients map[primitive.ObjectID]*models.Ingredient
}

func newFakeIngredientRepo(ingredients ...*models.Ingredient) *fakeIngredientRepo {
	repo := &fakeIngredientRepo{ingredients: make(map[primitive.ObjectID]*models.Ingredient)}
	for _, ing := range ingredients {
		repo.ingredients[ing.ID] = ing
	}
	return repo
}

func (r *fakeIngredientRepo) Create(_ context.Context, ingredient *models.Ingredient) error {
	if ingredient.ID.IsZero() {
		ingredient.ID = primitive.NewObjectID()
	}
	r.ingredients[ingredient.ID] = ingredient
	return nil
}

func (r *fakeIngredientRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.Ingredient, error) {
	if ing, ok := r.ingredients[id]; ok {
		copied := *ing
		return &copied, nil
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeIngredientRepo) List(_ context.Context, _ repositories.CatalogFilter) ([]models.Ingredient, error) {
	out := make([]models.Ingredient, 0, len(r.ingredients))
	for _, ing := range r.ingredients {
		out = append(out, *ing)
	}
	return out, nil
}

func (r *fakeIngredientRepo) Update(_ context.Context, id primitive.ObjectID, ingredient *models.Ingredient) error {
	if _, ok := r.ingredients[id]; !ok {
		return repositories.ErrNotFound
	}
	ingredient.ID = id
	r.ingredients[id] = ingredient
	return nil
}

func (r *fakeIngredientRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := r.ingredients[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.ingredients, id)
	return nil
}

func (r *fakeIngredientRepo) AdjustQuantity(_ context.Context, id primitive.ObjectID, delta int) error {
	ing, ok := r.ingredients[id]
	if !ok {
		return repositories.ErrNotFound
	}
	ing.Quantity += delta
	return nil
}

func (r *fakeIngredientRepo) SetRating(_ context.Context, id primitive.ObjectID, rating float64, numReviews int) error {
	ing, ok := r.ingredients[id]
	if !ok {
		return repositories.ErrNotFound
	}
	ing.Rating = rating
	ing.NumReviews = numReviews
	return nil
}

type fakeFlashSaleRepo struct {
	sales []*models.FlashSale
}

func (r *fakeFlashSaleRepo) Create(_ context.Context, sale *models.FlashSale) error {
	if sale.ID.IsZero() {
		sale.ID = primitive.NewObjectID()
	}
	r.sales = append(r.sales, sale)
	return nil
}

func (r *fakeFlashSaleRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.FlashSale, error) {
	for _, sale := range r.sales {
		if sale.ID == id {
			copied := *sale
			return &copied, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeFlashSaleRepo) List(_ context.Context) ([]models.FlashSale, error) {
	out := make([]models.FlashSale, 0, len(r.sales))
	for _, sale := range r.sales {
		out = append(out, *sale)
	}
	return out, nil
}

func (r *fakeFlashSaleRepo) ListRunning(_ context.Context, now time.Time) ([]models.FlashSale, error) {
	var out []models.FlashSale
	for _, sale := range r.sales {
		if sale.IsRunning(now) {
			out = append(out, *sale)
		}
	}
	return out, nil
}

func (r *fakeFlashSaleRepo) Update(_ context.Context, id primitive.ObjectID, sale *models.FlashSale) error {
	for i := range r.sales {
		if r.sales[i].ID == id {
			sale.ID = id
			r.sales[i] = sale
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (r *fakeFlashSaleRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	for i := range r.sales {
		if r.sales[i].ID == id {
			r.sales = append(r.sales[:i], r.sales[i+1:]...)
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (r *fakeFlashSaleRepo) IncrementSold(_ context.Context, saleID, itemID primitive.ObjectID, itemType models.ItemType, qty int) error {
	for _, sale := range r.sales {
		if sale.ID != saleID {
			continue
		}
		if line := sale.Line(itemID, itemType); line != nil {
			line.SoldQuantity += qty
			return nil
		}
	}
	return repositories.ErrNotFound
}

type fakeCartRepo struct {
	userCarts  map[primitive.ObjectID]*models.Cart
	guestCarts map[string]*models.Cart
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{
		userCarts:  make(map[primitive.ObjectID]*models.Cart),
		guestCarts: make(map[string]*models.Cart),
	}
}

func (r *fakeCartRepo) GetByUser(_ context.Context, userID primitive.ObjectID) (*models.Cart, error) {
	if cart, ok := r.userCarts[userID]; ok {
		copied := *cart
		copied.Items = append([]models.CartItem(nil), cart.Items...)
		return &copied, nil
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeCartRepo) GetByGuest(_ context.Context, guestID string) (*models.Cart, error) {
	if cart, ok := r.guestCarts[guestID]; ok {
		copied := *cart
		copied.Items = append([]models.CartItem(nil), cart.Items...)
		return &copied, nil
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeCartRepo) Save(_ context.Context, cart *models.Cart) error {
	copied := *cart
	copied.Items = append([]models.CartItem(nil), cart.Items...)
	if cart.UserID != nil {
		r.userCarts[*cart.UserID] = &copied
		return nil
	}
	r.guestCarts[cart.GuestID] = &copied
	return nil
}

func (r *fakeCartRepo) DeleteByGuest(_ context.Context, guestID string) error {
	delete(r.guestCarts, guestID)
	return nil
}

func (r *fakeCartRepo) ClearUser(_ context.Context, userID primitive.ObjectID) error {
	if cart, ok := r.userCarts[userID]; ok {
		cart.Items = nil
	}
	return nil
}

type fakeCheckoutRepo struct {
	checkouts map[primitive.ObjectID]*models.Checkout
}

func newFakeCheckoutRepo() *fakeCheckoutRepo {
	return &fakeCheckoutRepo{checkouts: make(map[primitive.ObjectID]*models.Checkout)}
}

func (r *fakeCheckoutRepo) Create(_ context.Context, checkout *models.Checkout) error {
	if checkout.ID.IsZero() {
		checkout.ID = primitive.NewObjectID()
	}
	copied := *checkout
	r.checkouts[checkout.ID] = &copied
	return nil
}

func (r *fakeCheckoutRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.Checkout, error) {
	if c, ok := r.checkouts[id]; ok {
		copied := *c
		return &copied, nil
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeCheckoutRepo) GetPendingByUser(_ context.Context, userID primitive.ObjectID) (*models.Checkout, error) {
	var latest *models.Checkout
	for _, c := range r.checkouts {
		if c.UserID == userID && !c.IsFinalized {
			if latest == nil || c.CreatedAt.After(latest.CreatedAt) {
				latest = c
			}
		}
	}
	if latest == nil {
		return nil, repositories.ErrNotFound
	}
	copied := *latest
	return &copied, nil
}

func (r *fakeCheckoutRepo) GetByTransactionID(_ context.Context, transactionID string) (*models.Checkout, error) {
	for _, c := range r.checkouts {
		if c.PaymentDetails != nil && c.PaymentDetails.TransactionID == transactionID {
			copied := *c
			return &copied, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeCheckoutRepo) Update(_ context.Context, checkout *models.Checkout) error {
	if _, ok := r.checkouts[checkout.ID]; !ok {
		return repositories.ErrNotFound
	}
	copied := *checkout
	r.checkouts[checkout.ID] = &copied
	return nil
}

type fakeOrderRepo struct {
	orders map[primitive.ObjectID]*models.Order
}

func newFakeOrderRepo(orders ...*models.Order) *fakeOrderRepo {
	repo := &fakeOrderRepo{orders: make(map[primitive.ObjectID]*models.Order)}
	for _, o := range orders {
		repo.orders[o.ID] = o
	}
	return repo
}

func (r *fakeOrderRepo) Create(_ context.Context, order *models.Order) error {
	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}
	copied := *order
	r.orders[order.ID] = &copied
	return nil
}

func (r *fakeOrderRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.Order, error) {
	if o, ok := r.orders[id]; ok {
		copied := *o
		return &copied, nil
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeOrderRepo) ListByUser(_ context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	var out []models.Order
	for _, o := range r.orders {
		if o.User.ID == userID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) List(_ context.Context, status models.OrderStatus) ([]models.Order, error) {
	var out []models.Order
	for _, o := range r.orders {
		if status == "" || o.Status == status {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) UpdateStatus(_ context.Context, id primitive.ObjectID, status models.OrderStatus, entry models.StatusEntry) error {
	o, ok := r.orders[id]
	if !ok {
		return repositories.ErrNotFound
	}
	o.Status = status
	o.StatusHistory = append(o.StatusHistory, entry)
	o.UpdatedAt = entry.UpdatedAt
	if status == models.StatusDelivered {
		deliveredAt := entry.UpdatedAt
		o.DeliveredAt = &deliveredAt
	}
	return nil
}

func (r *fakeOrderRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := r.orders[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.orders, id)
	return nil
}

type fakeUserRepo struct {
	users map[primitive.ObjectID]*models.User
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: make(map[primitive.ObjectID]*models.User)}
	for _, u := range users {
		repo.users[u.ID] = u
	}
	return repo
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	if u, ok := r.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeUserRepo) Update(_ context.Context, id primitive.ObjectID, fields map[string]interface{}) error {
	u, ok := r.users[id]
	if !ok {
		return repositories.ErrNotFound
	}
	if name, ok := fields["name"].(string); ok {
		u.Name = name
	}
	if phone, ok := fields["phone"].(string); ok {
		u.Phone = phone
	}
	if password, ok := fields["password"].(string); ok {
		u.Password = password
	}
	return nil
}

type fakeReviewRepo struct {
	reviews map[primitive.ObjectID]*models.Review
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{reviews: make(map[primitive.ObjectID]*models.Review)}
}

func (r *fakeReviewRepo) Create(_ context.Context, review *models.Review) error {
	if review.ID.IsZero() {
		review.ID = primitive.NewObjectID()
	}
	copied := *review
	r.reviews[review.ID] = &copied
	return nil
}

func (r *fakeReviewRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.Review, error) {
	if rev, ok := r.reviews[id]; ok {
		copied := *rev
		return &copied, nil
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeReviewRepo) GetByOrderItem(_ context.Context, orderID, productID primitive.ObjectID, itemType models.ItemType) (*models.Review, error) {
	for _, rev := range r.reviews {
		if rev.Order == orderID && rev.Product == productID && rev.ItemType == itemType {
			copied := *rev
			return &copied, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeReviewRepo) List(_ context.Context, filter repositories.ReviewFilter) ([]models.Review, error) {
	var out []models.Review
	for _, rev := range r.reviews {
		if filter.Product != nil && rev.Product != *filter.Product {
			continue
		}
		if filter.ItemType != "" && rev.ItemType != filter.ItemType {
			continue
		}
		if filter.Status != "" && rev.Status != filter.Status {
			continue
		}
		out = append(out, *rev)
	}
	return out, nil
}

func (r *fakeReviewRepo) UpdateStatus(_ context.Context, id primitive.ObjectID, status models.ReviewStatus) error {
	rev, ok := r.reviews[id]
	if !ok {
		return repositories.ErrNotFound
	}
	rev.Status = status
	return nil
}

func (r *fakeReviewRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := r.reviews[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.reviews, id)
	return nil
}

type fakeWishlistRepo struct {
	wishlists map[primitive.ObjectID]*models.Wishlist
}

func newFakeWishlistRepo() *fakeWishlistRepo {
	return &fakeWishlistRepo{wishlists: make(map[primitive.ObjectID]*models.Wishlist)}
}

func (r *fakeWishlistRepo) GetByUser(_ context.Context, userID primitive.ObjectID) (*models.Wishlist, error) {
	if w, ok := r.wishlists[userID]; ok {
		copied := *w
		copied.Items = append([]models.WishlistItem(nil), w.Items...)
		return &copied, nil
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeWishlistRepo) Save(_ context.Context, wishlist *models.Wishlist) error {
	copied := *wishlist
	copied.Items = append([]models.WishlistItem(nil), wishlist.Items...)
	r.wishlists[wishlist.UserID] = &copied
	return nil
}

// recordingNotifier captures status pushes for assertions.
type recordingNotifier struct {
	orderIDs []string
	statuses []models.OrderStatus
}

func (n *recordingNotifier) OrderStatusUpdated(orderID string, status models.OrderStatus, _ time.Time) {
	n.orderIDs = append(n.orderIDs, orderID)
	n.statuses = append(n.statuses, status)
}
