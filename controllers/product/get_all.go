package productcontroller

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/nimbusmart/commerce-api/models"
	"github.com/nimbusmart/commerce-api/response"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

var sortableColumns = map[string]bool{
	"created_at": true,
	"price":      true,
	"name":       true,
	"stock":      true,
}

// GET /products
// Supports pagination, category/tag filtering, free-text search over
// name/description/tags, price range and sorting.
func GetProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
		if page < 1 {
			page = 1
		}
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultPageSize)))
		if limit < 1 || limit > maxPageSize {
			limit = defaultPageSize
		}

		sortBy := c.DefaultQuery("sort_by", "created_at")
		if !sortableColumns[sortBy] {
			response.Error(c, http.StatusBadRequest, "Invalid sort_by")
			return
		}
		sortOrder := strings.ToLower(c.DefaultQuery("order", "desc"))
		if sortOrder != "asc" && sortOrder != "desc" {
			sortOrder = "desc"
		}

		query := db.Model(&models.Product{}).Preload("Categories")

		if search := c.Query("search"); search != "" {
			likePattern := "%" + search + "%"
			query = query.Where("name ILIKE ? OR description ILIKE ? OR tags ILIKE ?",
				likePattern, likePattern, likePattern)
		}
		if tag := c.Query("tag"); tag != "" {
			query = query.Where("tags ILIKE ?", "%"+tag+"%")
		}
		if minPrice := c.Query("min_price"); minPrice != "" {
			mp, err := strconv.ParseFloat(minPrice, 64)
			if err != nil {
				response.Error(c, http.StatusBadRequest, "Invalid min_price")
				return
			}
			query = query.Where("price >= ?", mp)
		}
		if maxPrice := c.Query("max_price"); maxPrice != "" {
			mp, err := strconv.ParseFloat(maxPrice, 64)
			if err != nil {
				response.Error(c, http.StatusBadRequest, "Invalid max_price")
				return
			}
			query = query.Where("price <= ?", mp)
		}
		if categoryID := c.Query("category_id"); categoryID != "" {
			cid, err := strconv.ParseUint(categoryID, 10, 64)
			if err != nil {
				response.Error(c, http.StatusBadRequest, "Invalid category_id")
				return
			}
			query = query.
				Joins("JOIN product_categories pc ON pc.product_id = products.id").
				Where("pc.category_id = ?", uint(cid))
		}

		var total int64
		if err := query.Count(&total).Error; err != nil {
			response.Error(c, http.StatusInternalServerError, "Failed to count products")
			return
		}

		var products []models.Product
		err := query.
			Order(fmt.Sprintf("%s %s", sortBy, sortOrder)).
			Offset((page - 1) * limit).
			Limit(limit).
			Find(&products).Error
		if err != nil {
			response.Error(c, http.StatusInternalServerError, "Failed to fetch products")
			return
		}

		response.OK(c, gin.H{
			"products": products,
			"page":     page,
			"limit":    limit,
			"total":    total,
		})
	}
}
