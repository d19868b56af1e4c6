package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/nimbusmart/commerce-api/models"
	"github.com/nimbusmart/commerce-api/response"
)

type CreateProductInput struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	Thumbnail   string  `json:"thumbnail"`
	Tags        string  `json:"tags"`
	Stock       int     `json:"stock" binding:"min=0"`
	CategoryIDs []uint  `json:"category_ids"`
}

// POST /admin/products
func CreateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CreateProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			response.Error(c, http.StatusBadRequest, "Invalid input: "+err.Error())
			return
		}

		var categories []models.Category
		if len(input.CategoryIDs) > 0 {
			if err := db.Find(&categories, input.CategoryIDs).Error; err != nil {
				response.Error(c, http.StatusInternalServerError, "Failed to resolve categories")
				return
			}
			if len(categories) != len(input.CategoryIDs) {
				response.Error(c, http.StatusBadRequest, "One or more categories do not exist")
				return
			}
		}

		product := models.Product{
			Name:        input.Name,
			Description: input.Description,
			Price:       input.Price,
			Thumbnail:   input.Thumbnail,
			Tags:        input.Tags,
			Stock:       input.Stock,
			Categories:  categories,
		}
		if err := db.Create(&product).Error; err != nil {
			response.Error(c, http.StatusInternalServerError, "Failed to create product")
			return
		}
		response.Created(c, product)
	}
}
