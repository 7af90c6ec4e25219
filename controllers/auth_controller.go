package controllers

import (
	"github.com/Hemachand25/FreshGrocery/entity"
	"github.com/Hemachand25/FreshGrocery/pkg/resp"
	"github.com/Hemachand25/FreshGrocery/services"
	"github.com/Hemachand25/FreshGrocery/utils"

	"github.com/gin-gonic/gin"
)

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthController struct{ Auth *services.AuthService }

func NewAuthController(s *services.AuthService) *AuthController { return &AuthController{Auth: s} }

func userOut(u *entity.User) gin.H {
	return gin.H{
		"id": u.ID, "email": u.Email, "firstName": u.FirstName, "lastName": u.LastName,
		"phoneNumber": u.PhoneNumber, "address": u.Address, "role": u.Role, "storeName": u.StoreName,
		"blocked": u.Blocked,
	}
}

// POST /auth/register
func (a *AuthController) Register(c *gin.Context) {
	var req services.RegisterIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	user, err := a.Auth.Register(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	resp.Created(c, userOut(user))
}

// POST /auth/login
func (a *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	token, user, err := a.Auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, gin.H{"token": token, "user": userOut(user)})
}

// GET /auth/me
func (a *AuthController) Me(c *gin.Context) {
	user, err := a.Auth.GetProfile(c.Request.Context(), utils.CurrentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, userOut(user))
}

// PUT /auth/profile
func (a *AuthController) UpdateProfile(c *gin.Context) {
	var req services.UpdateProfileIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	user, err := a.Auth.UpdateProfile(c.Request.Context(), utils.CurrentUserID(c), req)
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, userOut(user))
}

// DELETE /auth/me
func (a *AuthController) Deactivate(c *gin.Context) {
	if err := a.Auth.Deactivate(c.Request.Context(), utils.CurrentUserID(c)); err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, gin.H{"blocked": true})
}
