package wishlistControllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/nimbusmart/commerce-api/middleware"
	"github.com/nimbusmart/commerce-api/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Product{}, &models.Wishlist{}, &models.WishlistItem{}))
	return db
}

func newRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.CtxUserID, "user-1")
		c.Set(middleware.CtxRole, models.RoleUser)
	})
	r.GET("/wishlist", Get(db))
	r.POST("/wishlist", Add(db))
	r.DELETE("/wishlist/:product_id", Remove(db))
	r.DELETE("/wishlist", Clear(db))
	return r
}

func addProduct(t *testing.T, r *gin.Engine, productID uint) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(AddInput{ProductID: productID})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/wishlist", bytes.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func itemCount(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(&models.WishlistItem{}).Count(&count).Error)
	return count
}

func TestAddIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	product := models.Product{Name: "Desk Lamp", Price: 10, Stock: 5}
	require.NoError(t, db.Create(&product).Error)
	r := newRouter(db)

	w := addProduct(t, r, product.ID)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, int64(1), itemCount(t, db))

	// Adding again is a no-op, not an error.
	w = addProduct(t, r, product.ID)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, int64(1), itemCount(t, db))
}

func TestAddUnknownProduct(t *testing.T) {
	db := newTestDB(t)
	r := newRouter(db)

	w := addProduct(t, r, 404)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, int64(0), itemCount(t, db))
}

func TestRemove(t *testing.T) {
	db := newTestDB(t)
	product := models.Product{Name: "Desk Lamp", Price: 10, Stock: 5}
	require.NoError(t, db.Create(&product).Error)
	r := newRouter(db)
	addProduct(t, r, product.ID)

	req := httptest.NewRequest(http.MethodDelete, "/wishlist/1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(0), itemCount(t, db))

	// Removing an absent product reports 404.
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/wishlist/1", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestClear(t *testing.T) {
	db := newTestDB(t)
	a := models.Product{Name: "Desk Lamp", Price: 10, Stock: 5}
	b := models.Product{Name: "Notebook", Price: 5, Stock: 5}
	require.NoError(t, db.Create(&a).Error)
	require.NoError(t, db.Create(&b).Error)
	r := newRouter(db)
	addProduct(t, r, a.ID)
	addProduct(t, r, b.ID)
	require.Equal(t, int64(2), itemCount(t, db))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/wishlist", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(0), itemCount(t, db))
}

func TestWishlistIsLazy(t *testing.T) {
	db := newTestDB(t)
	r := newRouter(db)

	var lists int64
	require.NoError(t, db.Model(&models.Wishlist{}).Count(&lists).Error)
	assert.Zero(t, lists)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/wishlist", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, db.Model(&models.Wishlist{}).Count(&lists).Error)
	assert.Equal(t, int64(1), lists)
}
