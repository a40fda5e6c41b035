package models

type OrderStatus string

const (
	StatusPending       OrderStatus = "pending"
	StatusApproved      OrderStatus = "approved"
	StatusBaking        OrderStatus = "baking"
	StatusReady         OrderStatus = "ready"
	StatusShipping      OrderStatus = "shipping"
	StatusDelivered     OrderStatus = "delivered"
	StatusCancelled     OrderStatus = "cancelled"
	StatusCannotDeliver OrderStatus = "cannot_deliver"
)

// StatusInfo is the display copy shown for a status across every panel.
type StatusInfo struct {
	Label       string `json:"label"`
	Color       string `json:"color"`
	Description string `json:"description"`
}

var statusInfos = map[OrderStatus]StatusInfo{
	StatusPending:       {"Chờ xác nhận", "orange", "Đơn hàng đang chờ xác nhận"},
	StatusApproved:      {"Đã xác nhận", "blue", "Đơn hàng đã được xác nhận"},
	StatusBaking:        {"Đang chuẩn bị", "purple", "Tiệm đang chuẩn bị đơn hàng"},
	StatusReady:         {"Sẵn sàng giao", "teal", "Đơn hàng đã sẵn sàng để giao"},
	StatusShipping:      {"Đang giao hàng", "cyan", "Đơn hàng đang trên đường giao"},
	StatusDelivered:     {"Đã giao", "green", "Đơn hàng đã giao thành công"},
	StatusCancelled:     {"Đã hủy", "red", "Đơn hàng đã bị hủy"},
	StatusCannotDeliver: {"Không thể giao", "gray", "Không thể giao đơn hàng"},
}

var unknownStatusInfo = StatusInfo{"Không xác định", "gray", "Trạng thái không xác định"}

// Info returns display metadata for a status. Total over all strings: any
// value outside the known set maps to the unknown fallback.
func (s OrderStatus) Info() StatusInfo {
	if info, ok := statusInfos[s]; ok {
		return info
	}
	return unknownStatusInfo
}

var statusTransitions = map[OrderStatus][]OrderStatus{
	StatusPending:       {StatusApproved, StatusCancelled},
	StatusApproved:      {StatusBaking, StatusCancelled},
	StatusBaking:        {StatusReady, StatusCancelled},
	StatusReady:         {StatusShipping, StatusCancelled},
	StatusShipping:      {StatusDelivered, StatusCannotDeliver},
	StatusDelivered:     {},
	StatusCancelled:     {},
	StatusCannotDeliver: {},
}

// CanTransition reports whether an order may move from s to next. The graph
// is forward-only: delivered, cancelled and cannot_deliver are terminal.
func (s OrderStatus) CanTransition(next OrderStatus) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// NextStatuses lists the legal successor statuses of s.
func (s OrderStatus) NextStatuses() []OrderStatus {
	return statusTransitions[s]
}

func (s OrderStatus) IsTerminal() bool {
	next, known := statusTransitions[s]
	return known && len(next) == 0
}

func (s OrderStatus) IsKnown() bool {
	_, ok := statusInfos[s]
	return ok
}

// RequiredCapability maps a target status to the capability that may set it.
// Admin and manager hold orders:manage which covers every status.
func (s OrderStatus) RequiredCapability() []Capability {
	switch s {
	case StatusBaking, StatusReady:
		return []Capability{CapOrdersManage, CapOrdersBake}
	case StatusShipping, StatusDelivered, StatusCannotDeliver:
		return []Capability{CapOrdersManage, CapOrdersDeliver}
	default:
		return []Capability{CapOrdersManage}
	}
}
