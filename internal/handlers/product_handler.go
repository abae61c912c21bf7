package handlers

import (
	"net/http"

	"hellostore_backend/internal/middleware"
	"hellostore_backend/internal/services"
	"hellostore_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ProductHandler struct {
	BaseHandler
	productService services.ProductService
}

func NewProductHandler(base BaseHandler, productService services.ProductService) *ProductHandler {
	return &ProductHandler{BaseHandler: base, productService: productService}
}

// Home renders the landing page with the featured products strip.
func (h *ProductHandler) Home(c *gin.Context) {
	featured, err := h.productService.FeaturedProducts(c.Request.Context(), 8)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.HTML(http.StatusOK, "index.html", gin.H{
		"title":    "HelloStore",
		"user":     middleware.CurrentUser(c),
		"featured": featured,
	})
}

func (h *ProductHandler) Catalog(c *gin.Context) {
	category := c.Query("category")

	products, err := h.productService.ListProducts(c.Request.Context(), category)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.HTML(http.StatusOK, "products.html", gin.H{
		"title":    "Products",
		"user":     middleware.CurrentUser(c),
		"products": products,
		"category": category,
	})
}

// Admin panel: catalog management.

func (h *ProductHandler) AdminListProducts(c *gin.Context) {
	products, err := h.productService.ListProducts(c.Request.Context(), "")
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.HTML(http.StatusOK, "admin-products.html", gin.H{
		"title":    "Manage products",
		"user":     middleware.CurrentUser(c),
		"products": products,
	})
}

func (h *ProductHandler) AdminNewProduct(c *gin.Context) {
	c.HTML(http.StatusOK, "admin-product-form.html", gin.H{
		"title": "New product",
		"user":  middleware.CurrentUser(c),
	})
}

func (h *ProductHandler) AdminCreateProduct(c *gin.Context) {
	var form dto.ProductForm
	fieldErrors, err := h.BindForm(c, &form)
	if err != nil {
		c.HTML(http.StatusBadRequest, "admin-product-form.html", gin.H{
			"title":  "New product",
			"user":   middleware.CurrentUser(c),
			"form":   form,
			"errors": fieldErrors,
		})
		return
	}

	if _, err := h.productService.CreateProduct(c.Request.Context(), &form); err != nil {
		h.HandleError(c, err)
		return
	}

	c.Redirect(http.StatusSeeOther, "/admin/products")
}

func (h *ProductHandler) AdminEditProduct(c *gin.Context) {
	product, err := h.productService.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.HTML(http.StatusOK, "admin-product-form.html", gin.H{
		"title":   "Edit product",
		"user":    middleware.CurrentUser(c),
		"product": product,
	})
}

func (h *ProductHandler) AdminUpdateProduct(c *gin.Context) {
	id := c.Param("id")

	var form dto.ProductForm
	fieldErrors, err := h.BindForm(c, &form)
	if err != nil {
		product, perr := h.productService.GetProduct(c.Request.Context(), id)
		if perr != nil {
			h.HandleError(c, perr)
			return
		}
		c.HTML(http.StatusBadRequest, "admin-product-form.html", gin.H{
			"title":   "Edit product",
			"user":    middleware.CurrentUser(c),
			"product": product,
			"form":    form,
			"errors":  fieldErrors,
		})
		return
	}

	if err := h.productService.UpdateProduct(c.Request.Context(), id, &form); err != nil {
		h.HandleError(c, err)
		return
	}

	c.Redirect(http.StatusSeeOther, "/admin/products")
}

func (h *ProductHandler) AdminDeleteProduct(c *gin.Context) {
	if err := h.productService.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		h.HandleError(c, err)
		return
	}

	c.Redirect(http.StatusSeeOther, "/admin/products")
}
