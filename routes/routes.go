package routes

import (
	"fmt"
	"log/slog"

	"github.com/Hemachand25/FreshGrocery/configs"
	"github.com/Hemachand25/FreshGrocery/controllers"
	"github.com/Hemachand25/FreshGrocery/entity"
	"github.com/Hemachand25/FreshGrocery/middlewares"
	"github.com/Hemachand25/FreshGrocery/pkg/clock"
	"github.com/Hemachand25/FreshGrocery/repository"
	"github.com/Hemachand25/FreshGrocery/services"
	"github.com/Hemachand25/FreshGrocery/ws"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Deps struct {
	DB     *gorm.DB
	Config *configs.Config
	Hub    *ws.Hub
	Clock  clock.Clock
	Log    *slog.Logger
}

func RegisterRoutes(r *gin.Engine, d Deps) error {
	cfg := d.Config
	policy, err := services.ParseTransitionPolicy(cfg.TransitionPolicy)
	if err != nil {
		return fmt.Errorf("TRANSITION_POLICY: %w", err)
	}

	// Repositories
	userRepo := repository.NewUserRepository(d.DB)
	productRepo := repository.NewProductRepository(d.DB)
	cartRepo := repository.NewCartRepository(d.DB)
	orderRepo := repository.NewOrderRepository(d.DB)
	voRepo := repository.NewVendorOrderRepository(d.DB)

	// Services
	authSvc := services.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTTTL)
	aggregator := services.NewAggregator(d.DB, orderRepo, voRepo, d.Hub, d.Clock, d.Log)
	checkoutSvc := services.NewCheckoutService(d.DB, cartRepo, productRepo, orderRepo, voRepo, d.Hub, d.Clock, d.Log)
	voSvc := services.NewVendorOrderService(d.DB, voRepo, orderRepo, aggregator, d.Hub, d.Clock, policy, d.Log)
	orderSvc := services.NewOrderService(d.DB, orderRepo, voRepo, d.Hub, d.Clock, d.Log)

	// Controllers
	authCtrl := controllers.NewAuthController(authSvc)
	productCtrl := controllers.NewProductController(services.NewProductService(d.DB, productRepo))
	cartCtrl := controllers.NewCartController(services.NewCartService(d.DB, cartRepo, productRepo), checkoutSvc)
	orderCtrl := controllers.NewOrderController(orderSvc, voSvc)
	voCtrl := controllers.NewVendorOrderController(voSvc)
	adminCtrl := controllers.NewAdminController(
		services.NewVendorAdminService(authSvc, userRepo),
		services.NewUserAdminService(userRepo),
	)
	notifyCtrl := ws.NewHandler(d.Hub, d.Log, cfg.WSPingInterval)

	auth := func(roles ...entity.Role) gin.HandlerFunc {
		return middlewares.AuthMiddleware(cfg.JWTSecret, roles...)
	}

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	// Auth
	a := r.Group("/auth")
	{
		a.POST("/register", authCtrl.Register)
		a.POST("/login", authCtrl.Login)
		a.GET("/me", auth(), authCtrl.Me)
		a.DELETE("/me", auth(), authCtrl.Deactivate)
		a.PUT("/profile", auth(), authCtrl.UpdateProfile)
	}

	// Catalog (public)
	r.GET("/products", productCtrl.List)
	r.GET("/products/:id", productCtrl.Detail)
	r.GET("/categories", productCtrl.Categories)

	// Cart + checkout (customer)
	cart := r.Group("/cart", auth(entity.RoleCustomer))
	{
		cart.GET("", cartCtrl.Get)
		cart.POST("/items", cartCtrl.Add)
		cart.PATCH("/items/:id", cartCtrl.UpdateQty)
		cart.DELETE("/items/:id", cartCtrl.Remove)
		cart.POST("/checkout", cartCtrl.PlaceOrder)
	}

	// Orders (owner or admin, checked per order)
	o := r.Group("/orders", auth())
	{
		o.GET("", orderCtrl.ListForMe)
		o.GET("/:id", orderCtrl.Detail)
	}

	// Vendor
	v := r.Group("/vendor", auth(entity.RoleVendor, entity.RoleAdmin))
	{
		v.POST("/products", productCtrl.Create)
		v.PATCH("/products/:id", productCtrl.Update)
		v.GET("/orders", voCtrl.List)
		v.GET("/orders/:id", voCtrl.Detail)
		v.PUT("/orders/:id/status", voCtrl.UpdateStatus)
	}

	// Admin
	ad := r.Group("/admin", auth(entity.RoleAdmin))
	{
		ad.GET("/orders", orderCtrl.AdminList)
		ad.GET("/orders/:id/vendor-orders", orderCtrl.AdminVendorOrders)
		ad.PUT("/orders/:id/status", orderCtrl.AdminOverrideStatus)
		ad.GET("/users/:id/orders", orderCtrl.AdminUserOrders)

		ad.GET("/vendors", adminCtrl.ListVendors)
		ad.POST("/vendors", adminCtrl.CreateVendor)
		ad.PATCH("/vendors/:id", adminCtrl.UpdateVendor)
		ad.PUT("/vendors/:id", adminCtrl.UpdateVendor)
		ad.DELETE("/vendors/:id", adminCtrl.DeleteVendor)

		ad.GET("/users", adminCtrl.ListUsers)
		ad.DELETE("/users/:id", adminCtrl.BlockUser)
		ad.PUT("/users/:id/unblock", adminCtrl.UnblockUser)
	}

	// Notifications
	n := r.Group("/notifications", middlewares.WSAuthMiddleware(cfg.JWTSecret))
	{
		n.GET("/ws", notifyCtrl.ServeWS)
		n.GET("/sse", notifyCtrl.ServeSSE)
	}

	return nil
}
