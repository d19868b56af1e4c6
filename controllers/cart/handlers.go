package cartControllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/nimbusmart/commerce-api/middleware"
	"github.com/nimbusmart/commerce-api/models"
	"github.com/nimbusmart/commerce-api/response"
)

type AddItemInput struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1"`
}

type SetQuantityInput struct {
	Quantity *int `json:"quantity" binding:"required"`
}

type MergeInput struct {
	GuestID string `json:"guest_id" binding:"required"`
}

func ownerFrom(c *gin.Context) Owner {
	return Owner{
		ID:    middleware.UserIDFrom(c),
		Guest: middleware.RoleFrom(c) == models.RoleGuest,
	}
}

func writeCartError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrProductNotFound):
		response.Error(c, http.StatusBadRequest, "Product does not exist")
	case errors.Is(err, ErrInsufficientStock):
		response.Error(c, http.StatusBadRequest, "Insufficient stock")
	case errors.Is(err, ErrCartNotFound):
		response.Error(c, http.StatusNotFound, "Cart not found")
	case errors.Is(err, ErrItemNotFound):
		response.Error(c, http.StatusNotFound, "Cart item not found")
	default:
		response.Error(c, http.StatusInternalServerError, "Cart operation failed")
	}
}

// GET /cart
func GetCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		cart, err := GetOrCreate(db, ownerFrom(c))
		if err != nil {
			writeCartError(c, err)
			return
		}
		response.OK(c, cart)
	}
}

// POST /cart/items
func AddCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input AddItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			response.Error(c, http.StatusBadRequest, "Invalid input: "+err.Error())
			return
		}

		cart, err := AddItem(db, ownerFrom(c), input.ProductID, input.Quantity)
		if err != nil {
			writeCartError(c, err)
			return
		}
		response.Created(c, cart)
	}
}

// PUT /cart/items/:product_id
func UpdateCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID, err := parseProductID(c)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "Invalid product_id")
			return
		}

		var input SetQuantityInput
		if err := c.ShouldBindJSON(&input); err != nil {
			response.Error(c, http.StatusBadRequest, "Invalid input: "+err.Error())
			return
		}

		cart, err := SetQuantity(db, ownerFrom(c), productID, *input.Quantity)
		if err != nil {
			writeCartError(c, err)
			return
		}
		response.OK(c, cart)
	}
}

// DELETE /cart/items/:product_id
func DeleteCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID, err := parseProductID(c)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "Invalid product_id")
			return
		}

		cart, err := RemoveItem(db, ownerFrom(c), productID)
		if err != nil {
			writeCartError(c, err)
			return
		}
		response.OK(c, cart)
	}
}

// DELETE /cart
func ClearCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		cart, err := Clear(db, ownerFrom(c))
		if err != nil {
			writeCartError(c, err)
			return
		}
		response.OK(c, cart)
	}
}

// POST /cart/merge
// Explicit merge endpoint for clients that authenticate out of band;
// login performs the same merge when given a guest_id.
func MergeCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input MergeInput
		if err := c.ShouldBindJSON(&input); err != nil {
			response.Error(c, http.StatusBadRequest, "Invalid input: "+err.Error())
			return
		}

		cart, err := Merge(db, input.GuestID, middleware.UserIDFrom(c))
		if err != nil {
			writeCartError(c, err)
			return
		}
		response.OK(c, cart)
	}
}

func parseProductID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("product_id"), 10, 64)
	return uint(id), err
}
