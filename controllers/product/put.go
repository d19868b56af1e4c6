package productcontroller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/nimbusmart/commerce-api/models"
	"github.com/nimbusmart/commerce-api/response"
)

type UpdateProductInput struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Thumbnail   *string  `json:"thumbnail"`
	Tags        *string  `json:"tags"`
	Stock       *int     `json:"stock"`
	CategoryIDs []uint   `json:"category_ids"`
}

// PUT /admin/products/:id
func UpdateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var product models.Product
		if err := db.Preload("Categories").First(&product, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				response.Error(c, http.StatusNotFound, "Product not found")
			} else {
				response.Error(c, http.StatusInternalServerError, "Failed to fetch product")
			}
			return
		}

		var input UpdateProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			response.Error(c, http.StatusBadRequest, "Invalid input: "+err.Error())
			return
		}

		updates := map[string]any{}
		if input.Name != nil {
			updates["name"] = *input.Name
		}
		if input.Description != nil {
			updates["description"] = *input.Description
		}
		if input.Price != nil {
			if *input.Price <= 0 {
				response.Error(c, http.StatusBadRequest, "Price must be positive")
				return
			}
			updates["price"] = *input.Price
		}
		if input.Thumbnail != nil {
			updates["thumbnail"] = *input.Thumbnail
		}
		if input.Tags != nil {
			updates["tags"] = *input.Tags
		}
		if input.Stock != nil {
			if *input.Stock < 0 {
				response.Error(c, http.StatusBadRequest, "Stock cannot be negative")
				return
			}
			updates["stock"] = *input.Stock
		}

		if len(updates) > 0 {
			if err := db.Model(&product).Updates(updates).Error; err != nil {
				response.Error(c, http.StatusInternalServerError, "Failed to update product")
				return
			}
		}

		if input.CategoryIDs != nil {
			var categories []models.Category
			if len(input.CategoryIDs) > 0 {
				if err := db.Find(&categories, input.CategoryIDs).Error; err != nil {
					response.Error(c, http.StatusInternalServerError, "Failed to resolve categories")
					return
				}
			}
			if err := db.Model(&product).Association("Categories").Replace(categories); err != nil {
				response.Error(c, http.StatusInternalServerError, "Failed to update categories")
				return
			}
		}

		var fresh models.Product
		if err := db.Preload("Categories").First(&fresh, product.ID).Error; err != nil {
			response.Error(c, http.StatusInternalServerError, "Failed to fetch product")
			return
		}
		response.OK(c, fresh)
	}
}
