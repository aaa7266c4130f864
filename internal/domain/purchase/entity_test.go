package purchase

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPurchase(t *testing.T) {
	now := time.Date(2024, 3, 8, 9, 30, 0, 0, time.UTC)
	items := []PurchaseItem{
		{BookID: 1, Quantity: 3, UnitPrice: decimal.RequireFromString("10.50")},
		{BookID: 2, Quantity: 1, UnitPrice: decimal.RequireFromString("4.00")},
	}

	p := NewPurchase(7, PaymentWeb, now, items)

	assert.Equal(t, uint(7), p.UserID)
	assert.Equal(t, PaymentWeb, p.PaymentMethod)
	assert.Equal(t, now, p.PurchaseDate)
	assert.Equal(t, "35.50", p.Total().StringFixed(2))
	assert.Equal(t, 4, p.TotalQuantity())

	t.Run("快照与源数据解耦", func(t *testing.T) {
		items[0].Quantity = 99
		assert.Equal(t, 3, p.Items[0].Quantity)
	})
}

func TestParsePaymentMethod(t *testing.T) {
	tests := []struct {
		in      string
		want    PaymentMethod
		wantErr bool
	}{
		{"WEB", PaymentWeb, false},
		{"ussd", PaymentUSSD, false},
		{" Transfer ", PaymentTransfer, false},
		{"CARD", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePaymentMethod(tt.in)
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrInvalidPaymentMethod))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewCompletedEvent(t *testing.T) {
	now := time.Now()
	p := NewPurchase(3, PaymentUSSD, now, []PurchaseItem{
		{BookID: 5, Quantity: 2, UnitPrice: decimal.RequireFromString("7.25")},
	})
	p.ID = 11

	evt := NewCompletedEvent("evt-1", p, now)
	assert.Equal(t, uint(11), evt.PurchaseID)
	assert.Equal(t, "14.50", evt.Total)
	require.Len(t, evt.Items, 1)
	assert.Equal(t, "7.25", evt.Items[0].UnitPrice)
}
