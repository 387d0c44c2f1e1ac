package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderStatusByID(t *testing.T) {
	status, ok := OrderStatusByID(OrderStatusShipped)
	require.True(t, ok)
	assert.Equal(t, "SHIPPED", status.Name)
	assert.Equal(t, "Shipped", status.Label)

	_, ok = OrderStatusByID(99)
	assert.False(t, ok)
}

func TestTimeline_SortsAndMarksCurrent(t *testing.T) {
	base := time.Date(2025, time.March, 1, 10, 0, 0, 0, time.UTC)
	history := []OrderStatusHistory{
		{ID: "3", StatusID: OrderStatusShipped, ChangedAt: base.Add(48 * time.Hour)},
		{ID: "1", StatusID: OrderStatusPending, ChangedAt: base},
		{ID: "2", StatusID: OrderStatusConfirmed, ChangedAt: base.Add(time.Hour)},
	}

	timeline := Timeline(history)

	require.Len(t, timeline, 3)
	assert.Equal(t, "Order Placed", timeline[0].Status.Label)
	assert.Equal(t, "Order Confirmed", timeline[1].Status.Label)
	assert.Equal(t, "Shipped", timeline[2].Status.Label)
	assert.False(t, timeline[0].Current)
	assert.True(t, timeline[2].Current)
	// input is left untouched
	assert.Equal(t, "3", history[0].ID)
}

func TestTimeline_UnknownStatus(t *testing.T) {
	timeline := Timeline([]OrderStatusHistory{{StatusID: 42}})

	require.Len(t, timeline, 1)
	assert.Equal(t, "Unknown", timeline[0].Status.Label)
	assert.True(t, timeline[0].Current)
}

func TestTimeline_Empty(t *testing.T) {
	assert.Empty(t, Timeline(nil))
}

func TestToneForStatus(t *testing.T) {
	tests := map[string]StatusTone{
		"Pending":          ToneWarning,
		"in progress":      ToneWarning,
		"SHIPPED":          ToneInfo,
		"out for delivery": ToneInfo,
		"Delivered":        ToneSuccess,
		"completed":        ToneSuccess,
		"cancelled":        ToneDanger,
		"failed":           ToneDanger,
		"on hold":          ToneNeutral,
	}

	for status, want := range tests {
		t.Run(status, func(t *testing.T) {
			assert.Equal(t, want, ToneForStatus(status))
		})
	}
}
