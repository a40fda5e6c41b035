package service

import (
	"context"
	"time"

	"bakehouse-backend/internal/apperr"
	"bakehouse-backend/internal/repositories"
	"bakehouse-backend/models"
	"bakehouse-backend/pkg/logger"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notifier pushes order-status changes to connected clients. The websocket
// hub implements it; tests use a recording fake.
type Notifier interface {
	OrderStatusUpdated(orderID string, status models.OrderStatus, updatedAt time.Time)
}

// Actor is whoever is touching an order: the capability check runs against
// its role.
type Actor struct {
	UserID primitive.ObjectID
	Name   string
	Role   models.Role
}

type OrderService struct {
	orders   repositories.OrderRepository
	notifier Notifier
	logger   *logger.Logger
	now      func() time.Time
}

func NewOrderService(orders repositories.OrderRepository, notifier Notifier, log *logger.Logger) *OrderService {
	return &OrderService{
		orders:   orders,
		notifier: notifier,
		logger:   log.WithComponent("order_service"),
		now:      time.Now,
	}
}

func (s *OrderService) MyOrders(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	orders, err := s.orders.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperr.Wrap(err, apperr.CodeInternal, "listing orders")
	}
	return orders, nil
}

// Get returns an order to its owner, or to anyone holding orders:manage.
func (s *OrderService) Get(ctx context.Context, actor Actor, orderID primitive.ObjectID) (*models.Order, error) {
	order, err := s.load(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.User.ID != actor.UserID && !actor.Role.Can(models.CapOrdersManage) {
		return nil, apperr.New(apperr.CodeForbidden, "order belongs to another user")
	}
	return order, nil
}

// Cancel lets the customer abort an order that has not entered the kitchen.
func (s *OrderService) Cancel(ctx context.Context, actor Actor, orderID primitive.ObjectID, note string) (*models.Order, error) {
	order, err := s.load(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.User.ID != actor.UserID {
		return nil, apperr.New(apperr.CodeForbidden, "order belongs to another user")
	}
	if order.Status != models.StatusPending && order.Status != models.StatusApproved {
		return nil, apperr.New(apperr.CodeInvalidTransition, "order can no longer be cancelled (status %s)", order.Status)
	}
	return s.applyStatus(ctx, order, models.StatusCancelled, note, actor.Name)
}

func (s *OrderService) List(ctx context.Context, status models.OrderStatus) ([]models.Order, error) {
	if status != "" && !status.IsKnown() {
		return nil, apperr.New(apperr.CodeInvalidInput, "unknown status %q", status)
	}
	orders, err := s.orders.List(ctx, status)
	if err != nil {
		return nil, apperr.Wrap(err, apperr.CodeInternal, "listing orders")
	}
	return orders, nil
}

// UpdateStatus moves an order along the workflow. The actor needs a
// capability matching the target status and the transition must be legal.
func (s *OrderService) UpdateStatus(ctx context.Context, actor Actor, orderID primitive.ObjectID, status models.OrderStatus, note string) (*models.Order, error) {
	if !status.IsKnown() {
		return nil, apperr.New(apperr.CodeInvalidInput, "unknown status %q", status)
	}

	allowed := false
	for _, cap := range status.RequiredCapability() {
		if actor.Role.Can(cap) {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, apperr.New(apperr.CodeForbidden, "role %s may not set status %s", actor.Role, status)
	}

	order, err := s.load(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !order.Status.CanTransition(status) {
		return nil, apperr.New(apperr.CodeInvalidTransition, "cannot move order from %s to %s", order.Status, status)
	}
	return s.applyStatus(ctx, order, status, note, actor.Name)
}

func (s *OrderService) Delete(ctx context.Context, orderID primitive.ObjectID) error {
	if err := s.orders.Delete(ctx, orderID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperr.New(apperr.CodeNotFound, "order not found")
		}
		return apperr.Wrap(err, apperr.CodeInternal, "deleting order")
	}
	s.logger.WithField("order_id", orderID.Hex()).Info("order deleted")
	return nil
}

func (s *OrderService) applyStatus(ctx context.Context, order *models.Order, status models.OrderStatus, note, updatedBy string) (*models.Order, error) {
	now := s.now()
	entry := models.StatusEntry{
		Status:    status,
		Note:      note,
		UpdatedBy: updatedBy,
		UpdatedAt: now,
	}
	if err := s.orders.UpdateStatus(ctx, order.ID, status, entry); err != nil {
		return nil, apperr.Wrap(err, apperr.CodeInternal, "updating order status")
	}

	order.Status = status
	order.StatusHistory = append(order.StatusHistory, entry)
	order.UpdatedAt = now
	if status == models.StatusDelivered {
		order.DeliveredAt = &now
	}

	if s.notifier != nil {
		s.notifier.OrderStatusUpdated(order.ID.Hex(), status, now)
	}
	s.logger.WithField("order_id", order.ID.Hex()).WithField("status", string(status)).Info("order status updated")
	return order, nil
}

func (s *OrderService) load(ctx context.Context, orderID primitive.ObjectID) (*models.Order, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperr.New(apperr.CodeNotFound, "order not found")
		}
		return nil, apperr.Wrap(err, apperr.CodeInternal, "loading order")
	}
	return order, nil
}
