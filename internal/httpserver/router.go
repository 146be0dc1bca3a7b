package httpserver

import (
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"agriconnect/internal/catalog"
	"agriconnect/internal/kv"
	"agriconnect/internal/session"
	cartstore "agriconnect/internal/store/cart"
	chatstore "agriconnect/internal/store/chat"
	notificationstore "agriconnect/internal/store/notification"
)

// Deps collects the stores and services the handlers compose.
type Deps struct {
	KV            kv.Store
	Session       *session.Manager
	Cart          *cartstore.Store
	Notifications *notificationstore.Store
	Chat          *chatstore.Store
	Catalog       *catalog.Service
	CheckoutDelay time.Duration
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, deps Deps) (*gin.Engine, error) {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	router.Use(cors.Default())

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(deps.KV))

	router.POST("/session/login", loginHandler(deps.Session))
	router.POST("/session/signup", signupHandler(deps.Session))
	router.POST("/session/logout", logoutHandler(deps.Session))
	router.GET("/session", currentSessionHandler(deps.Session))

	router.GET("/products", listProductsHandler(deps.Catalog))
	router.GET("/products/:id", getProductHandler(deps.Catalog))

	router.GET("/cart", getCartHandler(deps.Cart))
	router.POST("/cart/items", addCartItemHandler(deps.Cart, deps.Catalog))
	router.PATCH("/cart/items/:id", updateCartItemHandler(deps.Cart))
	router.DELETE("/cart/items/:id", removeCartItemHandler(deps.Cart))
	router.DELETE("/cart", clearCartHandler(deps.Cart))
	router.POST("/cart/checkout", checkoutHandler(deps))

	router.GET("/notifications", listNotificationsHandler(deps.Notifications))
	router.POST("/notifications", addNotificationHandler(deps.Notifications))
	router.POST("/notifications/read-all", markAllReadHandler(deps.Notifications))
	router.POST("/notifications/:id/read", markReadHandler(deps.Notifications))
	router.DELETE("/notifications/:id", deleteNotificationHandler(deps.Notifications))

	router.GET("/chat/messages", chatMessagesHandler(deps.Chat))
	router.POST("/chat/messages", chatSendHandler(deps.Chat))
	router.POST("/chat/toggle", chatToggleHandler(deps.Chat))
	router.GET("/chat/state", chatStateHandler(deps.Chat))

	return router, nil
}
