package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/nimbusmart/commerce-api/models"
	"github.com/nimbusmart/commerce-api/response"
)

// DELETE /admin/products/:id
// Soft-delete; existing cart and order snapshots keep their frozen copy
// of the product.
func DeleteProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var product models.Product
		if err := db.Preload("Categories").First(&product, "id = ?", c.Param("id")).Error; err != nil {
			response.Error(c, http.StatusNotFound, "Product not found")
			return
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&product).Association("Categories").Clear(); err != nil {
				return err
			}
			return tx.Delete(&product).Error
		})
		if err != nil {
			response.Error(c, http.StatusInternalServerError, "Failed to delete product")
			return
		}

		response.Message(c, http.StatusOK, "Product deleted")
	}
}
