package controllers

import (
	"github.com/Hemachand25/FreshGrocery/entity"
	"github.com/Hemachand25/FreshGrocery/pkg/resp"
	"github.com/Hemachand25/FreshGrocery/services"
	"github.com/Hemachand25/FreshGrocery/utils"

	"github.com/gin-gonic/gin"
)

type VendorOrderController struct {
	VendorOrders *services.VendorOrderService
}

func NewVendorOrderController(s *services.VendorOrderService) *VendorOrderController {
	return &VendorOrderController{VendorOrders: s}
}

// GET /vendor/orders?status=
func (ctl *VendorOrderController) List(c *gin.Context) {
	var status entity.VendorOrderStatus
	if s := c.Query("status"); s != "" {
		st, err := services.ParseVendorOrderStatus(s)
		if err != nil {
			fail(c, err)
			return
		}
		status = st
	}
	items, err := ctl.VendorOrders.ListMine(c.Request.Context(), utils.CurrentPrincipal(c), status)
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, items)
}

// GET /vendor/orders/:id
func (ctl *VendorOrderController) Detail(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	vo, err := ctl.VendorOrders.Get(c.Request.Context(), id, utils.CurrentPrincipal(c))
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, vo)
}

// PUT /vendor/orders/:id/status
func (ctl *VendorOrderController) UpdateStatus(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	st, err := services.ParseVendorOrderStatus(req.Status)
	if err != nil {
		fail(c, err)
		return
	}
	vo, err := ctl.VendorOrders.UpdateStatus(c.Request.Context(), id, st, utils.CurrentPrincipal(c))
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, vo)
}
