package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fadyamr909/EcommApp/internal/auth"
	"github.com/fadyamr909/EcommApp/internal/db"
	"github.com/fadyamr909/EcommApp/internal/models"
	"github.com/fadyamr909/EcommApp/internal/notifier"
	"github.com/fadyamr909/EcommApp/internal/orders"
)

// PlaceOrder converts the session cart into a persisted order. The
// cart is cleared only after the order transaction has committed.
func PlaceOrder(c *gin.Context) {
	svc := cartService(c)

	cartItems, err := svc.Items()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if len(cartItems) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cart is empty"})
		return
	}

	order, err := orders.NewService(db.DB).Create(c.Request.Context(), cartItems)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error placing order", "detail": err.Error()})
		return
	}

	svc.Clear()

	if principal, ok := auth.CurrentPrincipal(c); ok {
		notifyOrderPlaced(principal, order)
	}

	c.JSON(http.StatusOK, gin.H{"order_id": order.ID, "message": "order placed successfully"})
}

func ListOrders(c *gin.Context) {
	result, err := orders.NewService(db.DB).List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

func GetOrder(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}

	order, err := orders.NewService(db.DB).Get(c.Request.Context(), id)
	if err != nil {
		if err == orders.ErrOrderNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Order not found with ID: %d", id)})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, order)
}

// notifyOrderPlaced fires confirmation messages without blocking the
// response. Failures are logged, never surfaced to the buyer.
func notifyOrderPlaced(principal auth.Principal, order *models.Order) {
	var user models.User
	if err := db.DB.First(&user, principal.UserID).Error; err != nil {
		slog.Warn("order confirmation skipped, user lookup failed",
			slog.Uint64("user_id", uint64(principal.UserID)), slog.Any("err", err))
		return
	}

	go func() {
		if err := notifier.SendEmail(user.Email, user.Username, order.ID, order.TotalAmount); err != nil {
			slog.Warn("order confirmation email failed",
				slog.Uint64("order_id", uint64(order.ID)), slog.Any("err", err))
		}
	}()

	if user.Phone != "" {
		go func() {
			if err := notifier.SendSMS(user.Phone, order.ID, order.TotalAmount); err != nil {
				slog.Warn("order confirmation SMS failed",
					slog.Uint64("order_id", uint64(order.ID)), slog.Any("err", err))
			}
		}()
	}
}
