package services

import (
	"fmt"

	"github.com/Hemachand25/FreshGrocery/entity"
)

type Action int

const (
	ActionCheckout Action = iota
	ActionViewOrder
	ActionListAllOrders
	ActionOverrideOrderStatus
	ActionListVendorOrders
	ActionViewVendorOrder
	ActionUpdateVendorOrder
	ActionManageProduct
	ActionManageVendors
	ActionManageUsers
)

func (a Action) String() string {
	switch a {
	case ActionCheckout:
		return "checkout"
	case ActionViewOrder:
		return "view order"
	case ActionListAllOrders:
		return "list all orders"
	case ActionOverrideOrderStatus:
		return "override order status"
	case ActionListVendorOrders:
		return "list vendor orders"
	case ActionViewVendorOrder:
		return "view vendor order"
	case ActionUpdateVendorOrder:
		return "update vendor order"
	case ActionManageProduct:
		return "manage product"
	case ActionManageVendors:
		return "manage vendors"
	case ActionManageUsers:
		return "manage users"
	}
	return fmt.Sprintf("action(%d)", int(a))
}

// Authorize holds every role and ownership rule of the API.
// ownerID is the user owning the resource: the customer of an order, the
// vendor of a vendor order or product. It is nil for unowned resources.
func Authorize(p entity.Principal, act Action, ownerID *uint) error {
	if p.ID == 0 {
		return ErrUnauthenticated
	}
	if _, ok := entity.ParseRole(string(p.Role)); !ok {
		return fmt.Errorf("%s: unknown role %q: %w", act, p.Role, ErrForbidden)
	}

	owns := ownerID != nil && *ownerID == p.ID

	allowed := false
	switch act {
	case ActionCheckout:
		allowed = true
	case ActionViewOrder:
		allowed = p.IsAdmin() || owns
	case ActionListAllOrders, ActionOverrideOrderStatus, ActionManageVendors, ActionManageUsers:
		allowed = p.IsAdmin()
	case ActionListVendorOrders:
		allowed = p.IsAdmin() || p.IsVendor()
	case ActionViewVendorOrder, ActionUpdateVendorOrder, ActionManageProduct:
		allowed = p.IsAdmin() || (p.IsVendor() && owns)
	}
	if !allowed {
		return fmt.Errorf("%s: %w", act, ErrForbidden)
	}
	return nil
}

// SubscriptionChannel resolves which notification channel a principal may open.
// requested is "", "user", "vendor" or "admin"; empty picks the role default.
func SubscriptionChannel(p entity.Principal, requested string) (string, error) {
	if p.ID == 0 {
		return "", ErrUnauthenticated
	}
	switch requested {
	case "":
		switch p.Role {
		case entity.RoleAdmin:
			return AdminChannel, nil
		case entity.RoleVendor:
			return VendorChannel(p.ID), nil
		default:
			return UserChannel(p.ID), nil
		}
	case "user":
		return UserChannel(p.ID), nil
	case "vendor":
		if p.IsVendor() {
			return VendorChannel(p.ID), nil
		}
	case "admin":
		if p.IsAdmin() {
			return AdminChannel, nil
		}
	default:
		return "", fmt.Errorf("channel %q: %w", requested, ErrInvalidInput)
	}
	return "", fmt.Errorf("channel %q: %w", requested, ErrForbidden)
}
