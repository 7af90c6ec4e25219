package services

import (
	"fmt"
	"sort"

	"github.com/Hemachand25/FreshGrocery/entity"
)

// PlatformVendorKey groups line items whose product has no vendor.
const PlatformVendorKey uint = 0

func vendorKeyOf(it entity.OrderItem) uint {
	if it.Product.VendorID == nil {
		return PlatformVendorKey
	}
	return *it.Product.VendorID
}

// Split groups the order's line items by the vendor owning each product and
// returns one PLACED vendor-order draft per vendor. It does not touch storage.
func Split(order *entity.Order) map[uint]*entity.VendorOrder {
	drafts := make(map[uint]*entity.VendorOrder)
	for _, it := range order.Items {
		key := vendorKeyOf(it)
		d, ok := drafts[key]
		if !ok {
			d = &entity.VendorOrder{OrderID: order.ID, Status: entity.VendorOrderPlaced}
			if key != PlatformVendorKey {
				vendorID := key
				d.VendorID = &vendorID
			}
			drafts[key] = d
		}
		d.Items = append(d.Items, it)
	}
	return drafts
}

// SortedKeys gives a stable iteration order over split drafts.
func SortedKeys(drafts map[uint]*entity.VendorOrder) []uint {
	keys := make([]uint, 0, len(drafts))
	for k := range drafts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// CheckPartition verifies that drafts cover the order's items exactly once and
// that every item sits under the vendor that owns its product.
func CheckPartition(order *entity.Order, drafts map[uint]*entity.VendorOrder) error {
	count := 0
	seen := make(map[uint]int, len(order.Items))
	for key, d := range drafts {
		if len(d.Items) == 0 {
			return fmt.Errorf("vendor group %d is empty: %w", key, ErrInconsistentPartition)
		}
		if d.VendorKey() != key {
			return fmt.Errorf("vendor group %d holds vendor %d: %w", key, d.VendorKey(), ErrInconsistentPartition)
		}
		for _, it := range d.Items {
			if vendorKeyOf(it) != key {
				return fmt.Errorf("product %d filed under vendor %d: %w", it.ProductID, key, ErrInconsistentPartition)
			}
			count++
			if it.ID != 0 {
				seen[it.ID]++
			}
		}
	}
	if count != len(order.Items) {
		return fmt.Errorf("%d of %d items grouped: %w", count, len(order.Items), ErrInconsistentPartition)
	}
	for _, it := range order.Items {
		if it.ID != 0 && seen[it.ID] != 1 {
			return fmt.Errorf("item %d grouped %d times: %w", it.ID, seen[it.ID], ErrInconsistentPartition)
		}
	}
	return nil
}
