package routes

import (
	"net/http"
	"strings"

	"hellostore_backend/internal/handlers"
	"hellostore_backend/internal/middleware"
	"hellostore_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires the full route table. The access gate runs on every
// request; the role gate only on the admin groups.
func RegisterRoutes(r *gin.Engine, h *handlers.AppHandlers, gate *middleware.AccessGate, errs *apperrors.GinErrorHandler) {
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogging())
	r.Use(middleware.Recovery())
	r.Use(gate.Handler())

	r.Static("/static", "web/static")

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Public pages
	r.GET("/", h.Product.Home)
	r.GET("/products", h.Product.Catalog)

	users := r.Group("/users")
	{
		users.GET("/register", h.Auth.ShowRegister)
		users.POST("/register", h.Auth.Register)
		users.GET("/verify/:token", h.Auth.VerifyEmail)
		users.GET("/login", h.Auth.ShowLogin)
		users.POST("/login", h.Auth.Login)
		users.GET("/logout", h.Auth.Logout)
		users.GET("/password/forgot", h.Auth.ShowForgotPassword)
		users.POST("/password/forgot", h.Auth.ForgotPassword)
		users.GET("/password/reset/:token", h.Auth.ShowResetPassword)
		users.POST("/password/reset/:token", h.Auth.ResetPassword)

		// Behind the gate
		authed := users.Group("", middleware.RequireLogin(errs))
		{
			authed.GET("/dashboard", h.User.Dashboard)
			authed.GET("/profile", h.User.ShowProfile)
			authed.POST("/profile", h.User.UpdateProfile)
			authed.GET("/orders", h.User.Orders)
		}

		// Admin user management
		admin := users.Group("", middleware.RequireAdmin(errs))
		{
			admin.GET("/admin", h.User.AdminListUsers)
			admin.GET("/list", h.User.AdminListUsers)
			admin.GET("/edit/:id", h.User.AdminEditUser)
			admin.POST("/edit/:id", h.User.AdminUpdateUser)
			admin.POST("/delete/:id", h.User.AdminDeleteUser)
		}
	}

	orders := r.Group("/orders", middleware.RequireLogin(errs))
	{
		orders.POST("/checkout", h.Order.Checkout)
		orders.GET("/:id/success", h.Order.OrderSuccess)
	}

	admin := r.Group("/admin", middleware.RequireAdmin(errs))
	{
		admin.GET("/products", h.Product.AdminListProducts)
		admin.GET("/products/new", h.Product.AdminNewProduct)
		admin.POST("/products", h.Product.AdminCreateProduct)
		admin.GET("/products/edit/:id", h.Product.AdminEditProduct)
		admin.POST("/products/edit/:id", h.Product.AdminUpdateProduct)
		admin.POST("/products/delete/:id", h.Product.AdminDeleteProduct)

		admin.GET("/orders", h.Order.AdminListOrders)
		admin.POST("/orders/update-status", h.Order.AdminUpdateOrderStatus)
	}

	r.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.JSON(http.StatusNotFound, gin.H{
				"error": gin.H{"code": apperrors.CodeNotFound, "message": "Not found."},
			})
			return
		}
		c.HTML(http.StatusNotFound, "error.html", gin.H{
			"title":   "Not found",
			"status":  http.StatusNotFound,
			"message": "The page you are looking for does not exist.",
		})
	})
}
