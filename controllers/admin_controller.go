package controllers

import (
	"github.com/Hemachand25/FreshGrocery/entity"
	"github.com/Hemachand25/FreshGrocery/pkg/resp"
	"github.com/Hemachand25/FreshGrocery/services"
	"github.com/Hemachand25/FreshGrocery/utils"

	"github.com/gin-gonic/gin"
)

// AdminController manages vendor and customer accounts.
type AdminController struct {
	Vendors *services.VendorAdminService
	Users   *services.UserAdminService
}

func NewAdminController(vendors *services.VendorAdminService, users *services.UserAdminService) *AdminController {
	return &AdminController{Vendors: vendors, Users: users}
}

func usersOut(users []entity.User) []gin.H {
	out := make([]gin.H, 0, len(users))
	for i := range users {
		out = append(out, userOut(&users[i]))
	}
	return out
}

// GET /admin/vendors
func (ac *AdminController) ListVendors(c *gin.Context) {
	users, err := ac.Vendors.List(c.Request.Context(), utils.CurrentPrincipal(c))
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, usersOut(users))
}

// POST /admin/vendors
func (ac *AdminController) CreateVendor(c *gin.Context) {
	var in services.CreateVendorIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	u, err := ac.Vendors.Create(c.Request.Context(), utils.CurrentPrincipal(c), in)
	if err != nil {
		fail(c, err)
		return
	}
	resp.Created(c, userOut(u))
}

// PATCH|PUT /admin/vendors/:id
func (ac *AdminController) UpdateVendor(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var in services.UpdateVendorIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	u, err := ac.Vendors.Update(c.Request.Context(), utils.CurrentPrincipal(c), id, in)
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, userOut(u))
}

// DELETE /admin/vendors/:id
func (ac *AdminController) DeleteVendor(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	u, err := ac.Vendors.Delete(c.Request.Context(), utils.CurrentPrincipal(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, userOut(u))
}

// GET /admin/users
func (ac *AdminController) ListUsers(c *gin.Context) {
	users, err := ac.Users.List(c.Request.Context(), utils.CurrentPrincipal(c))
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, usersOut(users))
}

// DELETE /admin/users/:id
func (ac *AdminController) BlockUser(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	u, err := ac.Users.Block(c.Request.Context(), utils.CurrentPrincipal(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, userOut(u))
}

// PUT /admin/users/:id/unblock
func (ac *AdminController) UnblockUser(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	u, err := ac.Users.Unblock(c.Request.Context(), utils.CurrentPrincipal(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, userOut(u))
}
