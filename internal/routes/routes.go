package routes

import (
	"github.com/gin-gonic/gin"

	"gomart/internal/authz"
	"gomart/internal/handlers"
	"gomart/internal/middleware"
	"gomart/internal/tokens"
)

func SetupRoutes(
	r *gin.Engine,
	issuer *tokens.Issuer,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	customerHandler *handlers.CustomerHandler,
	employeeHandler *handlers.EmployeeHandler,
	productHandler *handlers.ProductHandler,
	cartHandler *handlers.CartHandler,
	orderHandler *handlers.OrderHandler,
) *gin.Engine {

	// ---- public
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	auth := r.Group("/api/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/verify", authHandler.Verify)
		auth.POST("/resend", authHandler.Resend)
		auth.POST("/login", authHandler.Login)
		auth.POST("/admin/login", authHandler.AdminLogin)
		auth.POST("/refresh", authHandler.Refresh)
		auth.POST("/forgot-password", authHandler.ForgotPassword)
		auth.POST("/reset-password", authHandler.ResetPassword)
	}

	// ---- protected
	r.Use(middleware.Auth(issuer))

	authed := r.Group("/api/auth")
	{
		authed.GET("/me", authHandler.Me)
		authed.POST("/change-password", authHandler.ChangePassword)
	}

	// USERS (admin only)
	users := r.Group("/api/users", middleware.RequireAction(authz.ActionManageUsers))
	{
		users.GET("", userHandler.List)
		users.GET("/count", userHandler.Count)
		users.GET("/:id", userHandler.Get)
		users.PUT("/:id", userHandler.Update)
		users.DELETE("/:id", userHandler.Delete)
	}
	// own profile, any authenticated role
	r.PUT("/api/users/me", userHandler.UpdateProfile)

	// CUSTOMERS (staff)
	customers := r.Group("/api/customers", middleware.RequireAction(authz.ActionManageCustomers))
	{
		customers.GET("", customerHandler.Search)
		customers.GET("/:id", customerHandler.Get)
		customers.PUT("/:id/status", customerHandler.UpdateStatus)
		customers.DELETE("/:id", customerHandler.Delete)
	}
	// a customer may delete their own account
	r.DELETE("/api/customers/me", customerHandler.DeleteOwn)

	// EMPLOYEES (admin only)
	employees := r.Group("/api/employees", middleware.RequireAction(authz.ActionManageEmployees))
	{
		employees.POST("", employeeHandler.Create)
		employees.GET("", employeeHandler.Search)
		employees.GET("/:id", employeeHandler.Get)
		employees.PUT("/:id", employeeHandler.Update)
		employees.DELETE("/:id", employeeHandler.Delete)
	}

	// PRODUCTS: reads for everyone with a token, writes for catalog managers
	r.GET("/api/products", productHandler.List)
	r.GET("/api/products/:id", productHandler.Get)
	r.GET("/api/categories", productHandler.ListCategories)

	catalog := r.Group("/api", middleware.RequireAction(authz.ActionManageCatalog))
	{
		catalog.POST("/products", productHandler.Create)
		catalog.PUT("/products/:id", productHandler.Update)
		catalog.DELETE("/products/:id", productHandler.Delete)
		catalog.POST("/categories", productHandler.CreateCategory)
	}

	// CART (customers)
	cart := r.Group("/api/cart", middleware.RequireRoles(authz.RoleCustomer))
	{
		cart.GET("", cartHandler.List)
		cart.POST("/items", cartHandler.AddItem)
		cart.DELETE("/items/:id", cartHandler.RemoveItem)
	}

	// ORDERS
	orders := r.Group("/api/orders")
	{
		orders.POST("", middleware.RequireRoles(authz.RoleCustomer), orderHandler.Create)
		orders.GET("", middleware.RequireRoles(authz.RoleCustomer), orderHandler.ListOwn)
		orders.GET("/:id", orderHandler.Get)
		orders.GET("/:id/payment", orderHandler.GetPayment)
		orders.GET("/:id/invoice", orderHandler.Invoice)
		orders.POST("/:id/cancel", middleware.RequireRoles(authz.RoleCustomer), orderHandler.Cancel)
		orders.PUT("/:id/status", middleware.RequireAction(authz.ActionManageOrders), orderHandler.UpdateStatus)
		orders.POST("/:id/payment/complete", middleware.RequireAction(authz.ActionManageOrders), orderHandler.MarkPaid)
	}

	// order management list for staff
	r.GET("/api/admin/orders", middleware.RequireAction(authz.ActionManageOrders), orderHandler.ListAll)

	return r
}
