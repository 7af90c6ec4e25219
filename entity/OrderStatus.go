package entity

// OrderStatus is the customer-facing status of a whole checkout.
type OrderStatus string

const (
	OrderActive    OrderStatus = "ACTIVE"
	OrderCompleted OrderStatus = "COMPLETED"
	OrderCancelled OrderStatus = "CANCELLED"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderActive, OrderCompleted, OrderCancelled:
		return true
	}
	return false
}
