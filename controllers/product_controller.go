package controllers

import (
	"github.com/Hemachand25/FreshGrocery/pkg/resp"
	"github.com/Hemachand25/FreshGrocery/repository"
	"github.com/Hemachand25/FreshGrocery/services"
	"github.com/Hemachand25/FreshGrocery/utils"

	"github.com/gin-gonic/gin"
)

type ProductController struct{ Products *services.ProductService }

func NewProductController(s *services.ProductService) *ProductController {
	return &ProductController{Products: s}
}

// GET /products?categoryId=&vendorId=&q=
func (pc *ProductController) List(c *gin.Context) {
	items, err := pc.Products.List(c.Request.Context(), repository.ProductFilter{
		CategoryID: queryUint(c, "categoryId"),
		VendorID:   queryUint(c, "vendorId"),
		Query:      c.Query("q"),
	})
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, items)
}

// GET /products/:id
func (pc *ProductController) Detail(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	p, err := pc.Products.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, p)
}

// GET /categories
func (pc *ProductController) Categories(c *gin.Context) {
	items, err := pc.Products.Categories(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, items)
}

// POST /vendor/products
func (pc *ProductController) Create(c *gin.Context) {
	var in services.ProductIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	p, err := pc.Products.Create(c.Request.Context(), utils.CurrentPrincipal(c), in)
	if err != nil {
		fail(c, err)
		return
	}
	resp.Created(c, p)
}

// PATCH /vendor/products/:id
func (pc *ProductController) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var in services.ProductIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	p, err := pc.Products.Update(c.Request.Context(), utils.CurrentPrincipal(c), id, in)
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, p)
}
