package entity

// VendorOrderStatus is the delivery lifecycle state of one vendor's part of an order.
type VendorOrderStatus string

const (
	VendorOrderPlaced         VendorOrderStatus = "PLACED"
	VendorOrderAccepted       VendorOrderStatus = "ACCEPTED"
	VendorOrderPreparing      VendorOrderStatus = "PREPARING"
	VendorOrderReady          VendorOrderStatus = "READY"
	VendorOrderOutForDelivery VendorOrderStatus = "OUT_FOR_DELIVERY"
	VendorOrderDelivered      VendorOrderStatus = "DELIVERED"
	VendorOrderCancelled      VendorOrderStatus = "CANCELLED"
)

// vendorOrderRank orders the lifecycle; CANCELLED sits outside the line.
var vendorOrderRank = map[VendorOrderStatus]int{
	VendorOrderPlaced:         0,
	VendorOrderAccepted:       1,
	VendorOrderPreparing:      2,
	VendorOrderReady:          3,
	VendorOrderOutForDelivery: 4,
	VendorOrderDelivered:      5,
	VendorOrderCancelled:      -1,
}

func (s VendorOrderStatus) Valid() bool {
	_, ok := vendorOrderRank[s]
	return ok
}

func (s VendorOrderStatus) Terminal() bool {
	return s == VendorOrderDelivered || s == VendorOrderCancelled
}

// Rank is the position in the delivery lifecycle, -1 for CANCELLED or unknown.
func (s VendorOrderStatus) Rank() int {
	if r, ok := vendorOrderRank[s]; ok {
		return r
	}
	return -1
}
