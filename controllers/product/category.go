package productcontroller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/nimbusmart/commerce-api/models"
	"github.com/nimbusmart/commerce-api/response"
)

type CategoryInput struct {
	Name string `json:"name" binding:"required"`
}

// POST /admin/categories
func CreateCategory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CategoryInput
		if err := c.ShouldBindJSON(&input); err != nil {
			response.Error(c, http.StatusBadRequest, "Invalid input: "+err.Error())
			return
		}

		category := models.Category{Name: input.Name}
		if err := db.Create(&category).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				response.Error(c, http.StatusConflict, "Category already exists")
				return
			}
			response.Error(c, http.StatusInternalServerError, "Failed to create category")
			return
		}
		response.Created(c, category)
	}
}

// GET /categories
func GetCategories(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var categories []models.Category
		if err := db.Order("name").Find(&categories).Error; err != nil {
			response.Error(c, http.StatusInternalServerError, "Failed to fetch categories")
			return
		}
		response.OK(c, categories)
	}
}

// GET /categories/:id/products
func GetCategoryProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var category models.Category
		if err := db.Preload("Products").First(&category, "id = ?", c.Param("id")).Error; err != nil {
			response.Error(c, http.StatusNotFound, "Category not found")
			return
		}
		response.OK(c, category)
	}
}

// DELETE /admin/categories/:id
func DeleteCategory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var category models.Category
		if err := db.First(&category, "id = ?", c.Param("id")).Error; err != nil {
			response.Error(c, http.StatusNotFound, "Category not found")
			return
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&category).Association("Products").Clear(); err != nil {
				return err
			}
			return tx.Delete(&category).Error
		})
		if err != nil {
			response.Error(c, http.StatusInternalServerError, "Failed to delete category")
			return
		}
		response.Message(c, http.StatusOK, "Category deleted")
	}
}
