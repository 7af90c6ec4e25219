package controllers

import (
	"github.com/Hemachand25/FreshGrocery/entity"
	"github.com/Hemachand25/FreshGrocery/pkg/resp"
	"github.com/Hemachand25/FreshGrocery/services"
	"github.com/Hemachand25/FreshGrocery/utils"

	"github.com/gin-gonic/gin"
)

type OrderController struct {
	Orders       *services.OrderService
	VendorOrders *services.VendorOrderService
}

func NewOrderController(orders *services.OrderService, vendorOrders *services.VendorOrderService) *OrderController {
	return &OrderController{Orders: orders, VendorOrders: vendorOrders}
}

type StatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// GET /orders?limit=
func (oc *OrderController) ListForMe(c *gin.Context) {
	items, err := oc.Orders.ListMine(c.Request.Context(), utils.CurrentPrincipal(c), queryInt(c, "limit", 20))
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, items)
}

// GET /orders/:id
func (oc *OrderController) Detail(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	o, err := oc.Orders.Detail(c.Request.Context(), utils.CurrentPrincipal(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, o)
}

// ===== Admin =====

// GET /admin/orders?status=&page=&limit=
func (oc *OrderController) AdminList(c *gin.Context) {
	var status entity.OrderStatus
	if s := c.Query("status"); s != "" {
		st, err := services.ParseOrderStatus(s)
		if err != nil {
			fail(c, err)
			return
		}
		status = st
	}
	pg, err := oc.Orders.ListAll(c.Request.Context(), utils.CurrentPrincipal(c), status,
		queryInt(c, "page", 1), queryInt(c, "limit", 20))
	if err != nil {
		fail(c, err)
		return
	}
	resp.Page(c, pg.Items, pg.Total, pg.Page, pg.Limit)
}

// GET /admin/orders/:id/vendor-orders
func (oc *OrderController) AdminVendorOrders(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	items, err := oc.VendorOrders.ListForOrder(c.Request.Context(), id, utils.CurrentPrincipal(c))
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, items)
}

// GET /admin/users/:id/orders
func (oc *OrderController) AdminUserOrders(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	items, err := oc.Orders.ListForUser(c.Request.Context(), utils.CurrentPrincipal(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, items)
}

// PUT /admin/orders/:id/status
func (oc *OrderController) AdminOverrideStatus(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	st, err := services.ParseOrderStatus(req.Status)
	if err != nil {
		fail(c, err)
		return
	}
	o, err := oc.Orders.OverrideStatus(c.Request.Context(), utils.CurrentPrincipal(c), id, st)
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, o)
}
