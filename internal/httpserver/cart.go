package httpserver

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"agriconnect/internal/catalog"
	"agriconnect/internal/domain"
	cartstore "agriconnect/internal/store/cart"
	notificationstore "agriconnect/internal/store/notification"
)

type cartResponse struct {
	Items         []domain.CartLine `json:"items"`
	SubtotalCents int64             `json:"subtotalCents"`
	ItemCount     int               `json:"itemCount"`
}

func buildCartResponse(c *gin.Context, store *cartstore.Store) (cartResponse, bool) {
	ctx := c.Request.Context()
	items, err := store.Items(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "load cart failed"})
		return cartResponse{}, false
	}
	if items == nil {
		items = []domain.CartLine{}
	}
	subtotal, err := store.SubtotalCents(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "load cart failed"})
		return cartResponse{}, false
	}
	count, err := store.ItemCount(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "load cart failed"})
		return cartResponse{}, false
	}
	return cartResponse{Items: items, SubtotalCents: subtotal, ItemCount: count}, true
}

func rejectStatus(rej *cartstore.Rejection) int {
	switch rej.Reason {
	case cartstore.ReasonUnauthenticated:
		return http.StatusUnauthorized
	case cartstore.ReasonWrongRole:
		return http.StatusForbidden
	case cartstore.ReasonCapacityExceeded:
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

func getCartHandler(store *cartstore.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		resp, ok := buildCartResponse(c, store)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

type addCartItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity"`
}

func addCartItemHandler(store *cartstore.Store, cat *catalog.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req addCartItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "productId required"})
			return
		}

		product, err := cat.ByID(c.Request.Context(), req.ProductID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "load product failed"})
			return
		}

		rej, err := store.AddItem(c.Request.Context(), product.CartLine(req.Quantity))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "add item failed"})
			return
		}
		if rej != nil {
			c.JSON(rejectStatus(rej), gin.H{"rejection": rej})
			return
		}
		resp, ok := buildCartResponse(c, store)
		if !ok {
			return
		}
		c.JSON(http.StatusCreated, resp)
	}
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

func updateCartItemHandler(store *cartstore.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req updateQuantityRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "quantity required"})
			return
		}
		if err := store.UpdateQuantity(c.Request.Context(), c.Param("id"), req.Quantity); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "update quantity failed"})
			return
		}
		resp, ok := buildCartResponse(c, store)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

func removeCartItemHandler(store *cartstore.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := store.RemoveItem(c.Request.Context(), c.Param("id")); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "remove item failed"})
			return
		}
		resp, ok := buildCartResponse(c, store)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

func clearCartHandler(store *cartstore.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := store.Clear(c.Request.Context()); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "clear cart failed"})
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// checkoutHandler simulates order placement: after a processing delay it
// records an order notification and empties the cart. The two stores stay
// independent; this handler is the only place that composes them.
func checkoutHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := deps.Session.Current(); !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "no active session"})
			return
		}

		resp, ok := buildCartResponse(c, deps.Cart)
		if !ok {
			return
		}
		if len(resp.Items) == 0 {
			c.JSON(http.StatusConflict, gin.H{"error": "cart is empty"})
			return
		}

		if deps.CheckoutDelay > 0 {
			select {
			case <-c.Request.Context().Done():
				return
			case <-time.After(deps.CheckoutDelay):
			}
		}

		_, err := deps.Notifications.Add(c.Request.Context(), notificationstore.AddInput{
			Title: "Order Placed Successfully",
			Description: fmt.Sprintf(
				"Your order of %d items totaling $%.2f has been placed successfully. You will receive updates on your order status.",
				len(resp.Items), float64(resp.SubtotalCents)/100,
			),
			Type: domain.NotificationOrder,
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "record order failed"})
			return
		}
		if err := deps.Cart.Clear(c.Request.Context()); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "clear cart failed"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"orderId":       "order-" + uuid.NewString(),
			"itemCount":     resp.ItemCount,
			"subtotalCents": resp.SubtotalCents,
		})
	}
}
