package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"velora_storefront/internal/middleware"
	"velora_storefront/internal/models"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// All origins allowed; tighten in production.
		return true
	},
}

// CartWebSocket streams display-cart changes to the client: remote document
// snapshots while signed in, the device's cart signals otherwise. The
// subscription dies with the connection.
func (h *Handler) CartWebSocket(c *gin.Context) {
	sess := middleware.Session(c)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("❌ WebSocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	updates, stop := h.cart.Watch(ctx, sess)
	defer stop()

	conn.WriteJSON(gin.H{"type": "connected"})

	// Initial frame so the badge is right before the first change.
	if items, err := h.cart.Items(ctx, sess); err == nil {
		if err := writeCartFrame(conn, items); err != nil {
			return
		}
	}

	for {
		select {
		case items, ok := <-updates:
			if !ok {
				return
			}
			if err := writeCartFrame(conn, items); err != nil {
				log.Printf("❌ WebSocket write failed: %v", err)
				return
			}
		case <-time.After(30 * time.Second):
			// Keepalive ping.
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-ctx.Done():
			return
		}
	}
}

func writeCartFrame(conn *websocket.Conn, items []models.CartLineItem) error {
	total := 0.0
	for _, item := range items {
		total += item.Price * float64(item.Quantity)
	}
	return conn.WriteJSON(gin.H{
		"type":          "cart_updated",
		"items":         items,
		"totalQuantity": totalQuantity(items),
		"total":         total,
	})
}
