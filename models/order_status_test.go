package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusInfoKnownStatuses(t *testing.T) {
	cases := map[OrderStatus]string{
		StatusPending:       "Chờ xác nhận",
		StatusApproved:      "Đã xác nhận",
		StatusBaking:        "Đang chuẩn bị",
		StatusReady:         "Sẵn sàng giao",
		StatusShipping:      "Đang giao hàng",
		StatusDelivered:     "Đã giao",
		StatusCancelled:     "Đã hủy",
		StatusCannotDeliver: "Không thể giao",
	}
	for status, label := range cases {
		assert.Equal(t, label, status.Info().Label, "status %s", status)
		assert.True(t, status.IsKnown())
	}
}

func TestStatusInfoUnknownFallback(t *testing.T) {
	info := OrderStatus("does-not-exist").Info()
	assert.Equal(t, "Không xác định", info.Label)
	assert.Equal(t, "gray", info.Color)
	assert.False(t, OrderStatus("does-not-exist").IsKnown())
}

func TestStatusTransitionsForwardOnly(t *testing.T) {
	assert.True(t, StatusPending.CanTransition(StatusApproved))
	assert.True(t, StatusApproved.CanTransition(StatusBaking))
	assert.True(t, StatusBaking.CanTransition(StatusReady))
	assert.True(t, StatusReady.CanTransition(StatusShipping))
	assert.True(t, StatusShipping.CanTransition(StatusDelivered))

	// No skipping ahead, no moving backwards.
	assert.False(t, StatusPending.CanTransition(StatusBaking))
	assert.False(t, StatusApproved.CanTransition(StatusPending))
	assert.False(t, StatusShipping.CanTransition(StatusReady))
}

func TestStatusCancellation(t *testing.T) {
	for _, status := range []OrderStatus{StatusPending, StatusApproved, StatusBaking, StatusReady} {
		assert.True(t, status.CanTransition(StatusCancelled), "status %s", status)
	}
	assert.False(t, StatusShipping.CanTransition(StatusCancelled))
	assert.False(t, StatusDelivered.CanTransition(StatusCancelled))
}

func TestStatusCannotDeliverOnlyFromShipping(t *testing.T) {
	assert.True(t, StatusShipping.CanTransition(StatusCannotDeliver))
	for _, status := range []OrderStatus{StatusPending, StatusApproved, StatusBaking, StatusReady, StatusDelivered} {
		assert.False(t, status.CanTransition(StatusCannotDeliver), "status %s", status)
	}
}

func TestTerminalStatusesAreFrozen(t *testing.T) {
	all := []OrderStatus{
		StatusPending, StatusApproved, StatusBaking, StatusReady,
		StatusShipping, StatusDelivered, StatusCancelled, StatusCannotDeliver,
	}
	for _, terminal := range []OrderStatus{StatusDelivered, StatusCancelled, StatusCannotDeliver} {
		assert.True(t, terminal.IsTerminal())
		assert.Empty(t, terminal.NextStatuses())
		for _, next := range all {
			assert.False(t, terminal.CanTransition(next), "%s -> %s", terminal, next)
		}
	}
	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, OrderStatus("bogus").IsTerminal())
}

func TestRequiredCapability(t *testing.T) {
	assert.Contains(t, StatusBaking.RequiredCapability(), CapOrdersBake)
	assert.Contains(t, StatusReady.RequiredCapability(), CapOrdersBake)
	assert.Contains(t, StatusShipping.RequiredCapability(), CapOrdersDeliver)
	assert.Contains(t, StatusDelivered.RequiredCapability(), CapOrdersDeliver)
	assert.Contains(t, StatusCannotDeliver.RequiredCapability(), CapOrdersDeliver)
	assert.Equal(t, []Capability{CapOrdersManage}, StatusApproved.RequiredCapability())

	// orders:manage covers every status.
	for _, status := range []OrderStatus{StatusApproved, StatusBaking, StatusShipping} {
		assert.Contains(t, status.RequiredCapability(), CapOrdersManage)
	}
}

func TestRoleCapabilities(t *testing.T) {
	assert.True(t, RoleAdmin.Can(CapOrdersManage))
	assert.True(t, RoleManager.Can(CapFlashSalesManage))
	assert.True(t, RoleBaker.Can(CapOrdersBake))
	assert.True(t, RoleBaker.Can(CapRecipesRead))
	assert.False(t, RoleBaker.Can(CapOrdersDeliver))
	assert.True(t, RoleDelivery.Can(CapOrdersDeliver))
	assert.False(t, RoleCustomer.Can(CapOrdersManage))
	assert.Empty(t, Role("ghost").Capabilities())
}
