package controllers

import (
	"github.com/Hemachand25/FreshGrocery/pkg/resp"
	"github.com/Hemachand25/FreshGrocery/services"
	"github.com/Hemachand25/FreshGrocery/utils"

	"github.com/gin-gonic/gin"
)

type CartController struct {
	Cart     *services.CartService
	Checkout *services.CheckoutService
}

func NewCartController(cart *services.CartService, checkout *services.CheckoutService) *CartController {
	return &CartController{Cart: cart, Checkout: checkout}
}

type UpdateQtyRequest struct {
	Qty int `json:"qty" binding:"required,min=1"`
}

// GET /cart
func (cc *CartController) Get(c *gin.Context) {
	v, err := cc.Cart.Get(c.Request.Context(), utils.CurrentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, v)
}

// POST /cart/items
func (cc *CartController) Add(c *gin.Context) {
	var in services.AddToCartIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	item, err := cc.Cart.Add(c.Request.Context(), utils.CurrentUserID(c), &in)
	if err != nil {
		fail(c, err)
		return
	}
	resp.Created(c, item)
}

// PATCH /cart/items/:id
func (cc *CartController) UpdateQty(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req UpdateQtyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if err := cc.Cart.UpdateQty(c.Request.Context(), utils.CurrentUserID(c), id, req.Qty); err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, gin.H{"id": id, "qty": req.Qty})
}

// DELETE /cart/items/:id
func (cc *CartController) Remove(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := cc.Cart.RemoveItem(c.Request.Context(), utils.CurrentUserID(c), id); err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, gin.H{"id": id})
}

// POST /cart/checkout
func (cc *CartController) PlaceOrder(c *gin.Context) {
	order, err := cc.Checkout.Checkout(c.Request.Context(), utils.CurrentPrincipal(c))
	if err != nil {
		fail(c, err)
		return
	}
	resp.Created(c, order)
}
