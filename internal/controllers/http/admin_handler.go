package http

import (
	"net/http"
	"strconv"

	"reunion-shop/internal/services"

	"github.com/gin-gonic/gin"
)

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c, err)
		return
	}
	if err := h.auth.VerifyPassword(req.Password); err != nil {
		respondError(c, err)
		return
	}

	token, err := h.auth.IssueSession()
	if err != nil {
		respondError(c, err)
		return
	}
	h.setSessionCookie(c, token, int(services.AdminSessionTTL.Seconds()))
	c.JSON(http.StatusOK, CheckResponse{IsAdmin: true})
}

func (h *Handler) Logout(c *gin.Context) {
	h.setSessionCookie(c, "", -1)
	c.JSON(http.StatusOK, CheckResponse{IsAdmin: false})
}

func (h *Handler) Check(c *gin.Context) {
	token, _ := c.Cookie(services.AdminCookieName)
	c.JSON(http.StatusOK, CheckResponse{IsAdmin: h.auth.IsAdmin(token)})
}

func (h *Handler) setSessionCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(services.AdminCookieName, value, maxAge, "/", "", h.secureCookies, true)
}

func (h *Handler) ListOrders(c *gin.Context) {
	page, _ := strconv.Atoi(c.Query("page"))
	pageSize, _ := strconv.Atoi(c.Query("pageSize"))

	result, err := h.orders.ListOrders(c.Request.Context(), services.OrderQuery{
		Search:            c.Query("q"),
		PaymentStatus:     c.Query("paymentStatus"),
		FulfillmentStatus: c.Query("fulfillmentStatus"),
		DeliveryMethod:    c.Query("deliveryMethod"),
		Page:              page,
		PageSize:          pageSize,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) UpdateOrder(c *gin.Context) {
	var patch services.OrderPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badBody(c, err)
		return
	}

	order, err := h.orders.UpdateOrder(c.Request.Context(), c.Param("orderId"), patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *Handler) ListAllProducts(c *gin.Context) {
	products, err := h.catalog.ListAllProducts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *Handler) CreateProduct(c *gin.Context) {
	var req services.NewProductInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c, err)
		return
	}

	product, err := h.catalog.CreateProduct(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

func (h *Handler) UpdateProduct(c *gin.Context) {
	var patch services.ProductPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badBody(c, err)
		return
	}

	product, err := h.catalog.UpdateProduct(c.Request.Context(), c.Param("productId"), patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *Handler) DeleteProduct(c *gin.Context) {
	if err := h.catalog.DeactivateProduct(c.Request.Context(), c.Param("productId")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) AddVariant(c *gin.Context) {
	var req services.NewVariantInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c, err)
		return
	}

	variant, err := h.catalog.AddVariant(c.Request.Context(), c.Param("productId"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, variant)
}

func (h *Handler) UpdateVariant(c *gin.Context) {
	var patch services.VariantPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badBody(c, err)
		return
	}

	variant, err := h.catalog.UpdateVariant(c.Request.Context(), c.Param("variantId"), patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, variant)
}

func (h *Handler) DeleteVariant(c *gin.Context) {
	if err := h.catalog.DeactivateVariant(c.Request.Context(), c.Param("variantId")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
