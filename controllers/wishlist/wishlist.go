package wishlistControllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/nimbusmart/commerce-api/middleware"
	"github.com/nimbusmart/commerce-api/models"
	"github.com/nimbusmart/commerce-api/response"
)

type AddInput struct {
	ProductID uint `json:"product_id" binding:"required"`
}

func getOrCreate(db *gorm.DB, userID string) (*models.Wishlist, error) {
	var list models.Wishlist
	err := db.Where("user_id = ?", userID).Preload("Items").First(&list).Error
	if err == nil {
		return &list, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	list = models.Wishlist{UserID: userID}
	if err := db.Create(&list).Error; err != nil {
		return nil, err
	}
	return &list, nil
}

// GET /wishlist
func Get(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := getOrCreate(db, middleware.UserIDFrom(c))
		if err != nil {
			response.Error(c, http.StatusInternalServerError, "Failed to fetch wishlist")
			return
		}
		response.OK(c, list)
	}
}

// POST /wishlist
// Adding a product already on the list is a no-op.
func Add(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input AddInput
		if err := c.ShouldBindJSON(&input); err != nil {
			response.Error(c, http.StatusBadRequest, "Invalid input: "+err.Error())
			return
		}

		var product models.Product
		if err := db.First(&product, "id = ?", input.ProductID).Error; err != nil {
			response.Error(c, http.StatusBadRequest, "Product does not exist")
			return
		}

		list, err := getOrCreate(db, middleware.UserIDFrom(c))
		if err != nil {
			response.Error(c, http.StatusInternalServerError, "Failed to fetch wishlist")
			return
		}

		item := models.WishlistItem{WishlistID: list.ID, ProductID: product.ID}
		err = db.Where("wishlist_id = ? AND product_id = ?", list.ID, product.ID).
			FirstOrCreate(&item, models.WishlistItem{
				WishlistID: list.ID,
				ProductID:  product.ID,
				AddedAt:    time.Now(),
			}).Error
		if err != nil {
			response.Error(c, http.StatusInternalServerError, "Failed to save wishlist item")
			return
		}

		fresh, err := getOrCreate(db, middleware.UserIDFrom(c))
		if err != nil {
			response.Error(c, http.StatusInternalServerError, "Failed to fetch wishlist")
			return
		}
		response.Created(c, fresh)
	}
}

// DELETE /wishlist/:product_id
func Remove(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID, err := strconv.ParseUint(c.Param("product_id"), 10, 64)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "Invalid product_id")
			return
		}

		list, err := getOrCreate(db, middleware.UserIDFrom(c))
		if err != nil {
			response.Error(c, http.StatusInternalServerError, "Failed to fetch wishlist")
			return
		}

		result := db.Where("wishlist_id = ? AND product_id = ?", list.ID, uint(productID)).
			Delete(&models.WishlistItem{})
		if result.Error != nil {
			response.Error(c, http.StatusInternalServerError, "Failed to remove item")
			return
		}
		if result.RowsAffected == 0 {
			response.Error(c, http.StatusNotFound, "Product not on wishlist")
			return
		}
		response.Message(c, http.StatusOK, "Removed from wishlist")
	}
}

// DELETE /wishlist
func Clear(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := getOrCreate(db, middleware.UserIDFrom(c))
		if err != nil {
			response.Error(c, http.StatusInternalServerError, "Failed to fetch wishlist")
			return
		}
		if err := db.Where("wishlist_id = ?", list.ID).Delete(&models.WishlistItem{}).Error; err != nil {
			response.Error(c, http.StatusInternalServerError, "Failed to clear wishlist")
			return
		}
		response.Message(c, http.StatusOK, "Wishlist cleared")
	}
}
