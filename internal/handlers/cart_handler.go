package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fadyamr909/EcommApp/internal/db"
	"github.com/fadyamr909/EcommApp/internal/models"
)

type AddToCartRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,gt=0"`
}

type UpdateCartRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity"`
}

func GetCart(c *gin.Context) {
	svc := cartService(c)

	items, err := svc.Items()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	total, err := svc.Total()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items, "total": total, "count": svc.Count()})
}

func AddToCart(c *gin.Context) {
	var req AddToCartRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var product models.Product
	if err := db.DB.First(&product, req.ProductID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	cartService(c).AddItem(req.ProductID, req.Quantity)
	c.JSON(http.StatusOK, gin.H{"message": "item added to cart"})
}

// UpdateCartItem sets an entry's quantity; zero or less removes the
// entry. A product id not in the cart is a silent no-op.
func UpdateCartItem(c *gin.Context) {
	var req UpdateCartRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cartService(c).UpdateQuantity(req.ProductID, req.Quantity)
	c.JSON(http.StatusOK, gin.H{"message": "cart updated"})
}

func RemoveFromCart(c *gin.Context) {
	productID, err := parseID(c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	cartService(c).RemoveItem(productID)
	c.JSON(http.StatusOK, gin.H{"message": "item removed from cart"})
}

func ClearCart(c *gin.Context) {
	cartService(c).Clear()
	c.JSON(http.StatusOK, gin.H{"message": "cart cleared"})
}
