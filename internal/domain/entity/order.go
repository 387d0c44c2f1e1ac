package entity

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Order is an order as returned by the remote order service.
type Order struct {
	ID               string          `json:"id"`
	UserID           string          `json:"userId"`
	OrderDate        time.Time       `json:"orderDate"`
	PaymentMethodID  string          `json:"paymentMethodId"`
	ShippingAddress  string          `json:"shippingAddress"`
	ShippingMethodID string          `json:"shippingMethodId"`
	Total            decimal.Decimal `json:"orderTotal"`
	Status           string          `json:"orderStatus"`
	Lines            []OrderLine     `json:"orderLines,omitempty"`
}

// OrderLine is one purchased product of an order.
type OrderLine struct {
	ID            string          `json:"id,omitempty"`
	ProductItemID string          `json:"productItemId"`
	Quantity      int             `json:"qty"`
	Price         decimal.Decimal `json:"price"`
}

// OrderStatusHistory records one status transition of an order.
type OrderStatusHistory struct {
	ID        string    `json:"id"`
	OrderID   string    `json:"orderId"`
	StatusID  int       `json:"statusId"`
	ChangedAt time.Time `json:"changedAt"`
}

// OrderStatus is a backend order status with its display label.
type OrderStatus struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Label string `json:"label"`
}

// Backend order status ids.
const (
	OrderStatusPending   = 1
	OrderStatusConfirmed = 2
	OrderStatusShipped   = 3
	OrderStatusDelivered = 4
	OrderStatusCancelled = 5
)

var orderStatuses = map[int]OrderStatus{
	OrderStatusPending:   {ID: OrderStatusPending, Name: "PENDING", Label: "Order Placed"},
	OrderStatusConfirmed: {ID: OrderStatusConfirmed, Name: "CONFIRMED", Label: "Order Confirmed"},
	OrderStatusShipped:   {ID: OrderStatusShipped, Name: "SHIPPED", Label: "Shipped"},
	OrderStatusDelivered: {ID: OrderStatusDelivered, Name: "DELIVERED", Label: "Delivered"},
	OrderStatusCancelled: {ID: OrderStatusCancelled, Name: "CANCELLED", Label: "Cancelled"},
}

// OrderStatusByID looks up a backend status id.
func OrderStatusByID(id int) (OrderStatus, bool) {
	status, ok := orderStatuses[id]

	return status, ok
}

// OrderStatusByName looks up a backend status by name, ignoring case.
func OrderStatusByName(name string) (OrderStatus, bool) {
	name = strings.ToUpper(strings.TrimSpace(name))
	for _, status := range orderStatuses {
		if status.Name == name {
			return status, true
		}
	}

	return OrderStatus{}, false
}

// TimelineEntry is one displayable step of an order's history.
type TimelineEntry struct {
	Status    OrderStatus `json:"status"`
	ChangedAt time.Time   `json:"changedAt"`
	Current   bool        `json:"current"`
}

// Timeline orders the history oldest first and labels each step.
// Unknown status ids are kept with the label "Unknown". The newest entry
// is marked current.
func Timeline(history []OrderStatusHistory) []TimelineEntry {
	sorted := make([]OrderStatusHistory, len(history))
	copy(sorted, history)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ChangedAt.Before(sorted[j].ChangedAt)
	})

	entries := make([]TimelineEntry, 0, len(sorted))
	for _, h := range sorted {
		status, ok := OrderStatusByID(h.StatusID)
		if !ok {
			status = OrderStatus{ID: h.StatusID, Name: "UNKNOWN", Label: "Unknown"}
		}
		entries = append(entries, TimelineEntry{Status: status, ChangedAt: h.ChangedAt})
	}

	if len(entries) > 0 {
		entries[len(entries)-1].Current = true
	}

	return entries
}

// StatusTone is the colour bucket a status badge is drawn with.
type StatusTone string

const (
	ToneWarning StatusTone = "warning"
	ToneInfo    StatusTone = "info"
	ToneSuccess StatusTone = "success"
	ToneDanger  StatusTone = "danger"
	ToneNeutral StatusTone = "neutral"
)

// ToneForStatus maps a free-form status string to its badge tone.
func ToneForStatus(status string) StatusTone {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "pending", "processing", "in progress":
		return ToneWarning
	case "shipped", "out for delivery":
		return ToneInfo
	case "delivered", "completed":
		return ToneSuccess
	case "cancelled", "failed":
		return ToneDanger
	default:
		return ToneNeutral
	}
}
