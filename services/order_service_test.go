package services

import (
	"context"
	"testing"
	"time"

	"github.com/Hemachand25/FreshGrocery/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderService_DetailResolvesVendorOrders(t *testing.T) {
	f := newFixture(t, PolicyStrict)
	ctx := context.Background()
	f.addVendor(t, 42)
	f.addVendor(t, 43)
	o := f.placeOrder(t, 42, 43)

	got, err := f.orders.Detail(ctx, f.customer, o.ID)
	require.NoError(t, err)
	require.Len(t, got.VendorOrders, 2)
	assert.Len(t, got.Items, 2)
	for _, vo := range got.VendorOrders {
		assert.Equal(t, o.ID, vo.OrderID)
		assert.Len(t, vo.Items, 1)
	}

	stranger := f.addUser(t, 7, entity.RoleCustomer)
	_, err = f.orders.Detail(ctx, stranger, o.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = f.orders.Detail(ctx, f.admin, o.ID)
	assert.NoError(t, err)

	_, err = f.orders.Detail(ctx, f.customer, 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestOrderService_Listing(t *testing.T) {
	f := newFixture(t, PolicyStrict)
	ctx := context.Background()
	f.addVendor(t, 42)
	first := f.placeOrder(t, 42)
	second := f.placeOrder(t, 42)

	mine, err := f.orders.ListMine(ctx, f.customer, 0)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	// same created_at from the fixed clock, so id breaks the tie
	assert.Equal(t, second.ID, mine[0].ID)
	assert.Equal(t, first.ID, mine[1].ID)

	_, err = f.orders.ListAll(ctx, f.customer, "", 1, 10)
	assert.ErrorIs(t, err, ErrForbidden)

	pg, err := f.orders.ListAll(ctx, f.admin, "", 0, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), pg.Total)
	assert.Equal(t, 1, pg.Page)
	assert.Len(t, pg.Items, 1)

	pg, err = f.orders.ListAll(ctx, f.admin, entity.OrderCompleted, 1, 20)
	require.NoError(t, err)
	assert.Zero(t, pg.Total)

	byUser, err := f.orders.ListForUser(ctx, f.admin, f.customer.ID)
	require.NoError(t, err)
	assert.Len(t, byUser, 2)
}

func TestOrderService_OverrideStatus(t *testing.T) {
	f := newFixture(t, PolicyStrict)
	ctx := context.Background()
	v := f.addVendor(t, 42)
	o := f.placeOrder(t, 42)

	_, err := f.orders.OverrideStatus(ctx, v, o.ID, entity.OrderCancelled)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = f.orders.OverrideStatus(ctx, f.admin, o.ID, "SHIPPED")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = f.orders.OverrideStatus(ctx, f.admin, 999, entity.OrderCancelled)
	assert.ErrorIs(t, err, ErrNotFound)

	got, err := f.orders.OverrideStatus(ctx, f.admin, o.ID, entity.OrderCancelled)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderCancelled, got.Status)
	assert.Len(t, f.notes.named(EventOrderCancelled), 2)

	// repeating the override is a no-op
	_, err = f.orders.OverrideStatus(ctx, f.admin, o.ID, entity.OrderCancelled)
	require.NoError(t, err)
	assert.Len(t, f.notes.named(EventOrderCancelled), 2)
}

func TestOrderService_OverrideStampsClockTime(t *testing.T) {
	f := newFixture(t, PolicyStrict)
	ctx := context.Background()
	f.addVendor(t, 42)
	o := f.placeOrder(t, 42)

	stale := testNow.Add(-48 * time.Hour)
	require.NoError(t, f.db.Model(&entity.Order{}).Where("id = ?", o.ID).UpdateColumn("updated_at", stale).Error)

	_, err := f.orders.OverrideStatus(ctx, f.admin, o.ID, entity.OrderCancelled)
	require.NoError(t, err)

	var got entity.Order
	require.NoError(t, f.db.First(&got, o.ID).Error)
	assert.True(t, got.UpdatedAt.Equal(testNow), "updated_at = %v", got.UpdatedAt)
}
