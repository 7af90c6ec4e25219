package services

import (
	"testing"

	"github.com/Hemachand25/FreshGrocery/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func item(id, vendorID uint, qty int, price int64) entity.OrderItem {
	it := entity.OrderItem{Qty: qty, PriceAtPurchase: price}
	it.ID = id
	it.ProductID = id + 100
	if vendorID != 0 {
		v := vendorID
		it.Product.VendorID = &v
	}
	return it
}

func TestSplit(t *testing.T) {
	tests := []struct {
		name  string
		items []entity.OrderItem
		want  map[uint]int // vendor key -> item count
	}{
		{name: "empty order", items: nil, want: map[uint]int{}},
		{name: "single vendor", items: []entity.OrderItem{item(1, 7, 1, 10), item(2, 7, 2, 5)}, want: map[uint]int{7: 2}},
		{
			name:  "two vendors and platform",
			items: []entity.OrderItem{item(1, 7, 1, 10), item(2, 8, 1, 10), item(3, 0, 1, 10), item(4, 7, 1, 10)},
			want:  map[uint]int{7: 2, 8: 1, PlatformVendorKey: 1},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := &entity.Order{Items: tt.items}
			o.ID = 9

			drafts := Split(o)
			require.Len(t, drafts, len(tt.want))
			for key, n := range tt.want {
				d, ok := drafts[key]
				require.True(t, ok, "missing group %d", key)
				assert.Len(t, d.Items, n)
				assert.Equal(t, entity.VendorOrderPlaced, d.Status)
				assert.Equal(t, uint(9), d.OrderID)
				assert.Equal(t, key, d.VendorKey())
			}
			assert.NoError(t, CheckPartition(o, drafts))
		})
	}
}

func TestSplit_PlatformGroupHasNoVendor(t *testing.T) {
	drafts := Split(&entity.Order{Items: []entity.OrderItem{item(1, 0, 1, 10)}})
	require.Contains(t, drafts, PlatformVendorKey)
	assert.Nil(t, drafts[PlatformVendorKey].VendorID)
}

func TestSortedKeys(t *testing.T) {
	o := &entity.Order{Items: []entity.OrderItem{item(1, 9, 1, 1), item(2, 3, 1, 1), item(3, 0, 1, 1)}}
	assert.Equal(t, []uint{0, 3, 9}, SortedKeys(Split(o)))
}

func TestCheckPartition_Violations(t *testing.T) {
	o := &entity.Order{Items: []entity.OrderItem{item(1, 7, 1, 10), item(2, 8, 1, 10)}}

	t.Run("missing item", func(t *testing.T) {
		drafts := Split(o)
		delete(drafts, 8)
		assert.ErrorIs(t, CheckPartition(o, drafts), ErrInconsistentPartition)
	})
	t.Run("duplicated item", func(t *testing.T) {
		drafts := Split(o)
		drafts[8].Items = append(drafts[8].Items, drafts[8].Items[0])
		assert.ErrorIs(t, CheckPartition(o, drafts), ErrInconsistentPartition)
	})
	t.Run("item under wrong vendor", func(t *testing.T) {
		drafts := Split(o)
		drafts[7].Items[0] = item(1, 8, 1, 10)
		assert.ErrorIs(t, CheckPartition(o, drafts), ErrInconsistentPartition)
	})
	t.Run("empty group", func(t *testing.T) {
		drafts := Split(o)
		drafts[99] = &entity.VendorOrder{}
		assert.ErrorIs(t, CheckPartition(o, drafts), ErrInconsistentPartition)
	})
}
