package http

import (
	"net/http"

	"reunion-shop/internal/services"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	orders        *services.OrderService
	catalog       *services.CatalogService
	auth          *services.AuthService
	secureCookies bool
}

func NewHandler(orders *services.OrderService, catalog *services.CatalogService, auth *services.AuthService, secureCookies bool) *Handler {
	return &Handler{
		orders:        orders,
		catalog:       catalog,
		auth:          auth,
		secureCookies: secureCookies,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.POST("/orders", h.CreateOrder)
	r.GET("/orders/status", h.GetOrderStatus)
	r.GET("/products", h.ListProducts)

	admin := r.Group("/admin")
	admin.POST("/login", h.Login)
	admin.POST("/logout", h.Logout)
	admin.GET("/check", h.Check)

	guarded := admin.Group("", AdminOnly(h.auth))
	guarded.GET("/orders", h.ListOrders)
	guarded.PATCH("/orders/:orderId", h.UpdateOrder)
	guarded.GET("/products", h.ListAllProducts)
	guarded.POST("/products", h.CreateProduct)
	guarded.PATCH("/products/:productId", h.UpdateProduct)
	guarded.DELETE("/products/:productId", h.DeleteProduct)
	guarded.POST("/products/:productId/variants", h.AddVariant)
	guarded.PATCH("/variants/:variantId", h.UpdateVariant)
	guarded.DELETE("/variants/:variantId", h.DeleteVariant)
}

func (h *Handler) CreateOrder(c *gin.Context) {
	var req services.PlaceOrderInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c, err)
		return
	}

	order, err := h.orders.PlaceOrder(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, order.Summary())
}

func (h *Handler) GetOrderStatus(c *gin.Context) {
	order, err := h.orders.LookupOrder(c.Request.Context(), c.Query("orderCode"), c.Query("phone"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newOrderStatusResponse(order))
}

func (h *Handler) ListProducts(c *gin.Context) {
	products, err := h.catalog.ListActiveProducts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}
