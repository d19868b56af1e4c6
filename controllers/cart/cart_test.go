package cartControllers

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/nimbusmart/commerce-api/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Product{},
		&models.Cart{},
		&models.CartItem{},
	))
	return db
}

func seedProducts(t *testing.T, db *gorm.DB) (a, b models.Product) {
	t.Helper()
	a = models.Product{Name: "Desk Lamp", Price: 10, Thumbnail: "lamp.jpg", Stock: 10}
	b = models.Product{Name: "Notebook", Price: 5, Thumbnail: "notebook.jpg", Stock: 10}
	require.NoError(t, db.Create(&a).Error)
	require.NoError(t, db.Create(&b).Error)
	return a, b
}

func userOwner() Owner  { return Owner{ID: "user-1"} }
func guestOwner() Owner { return Owner{ID: "guest_abc", Guest: true} }

func TestGetOrCreateIsLazy(t *testing.T) {
	db := newTestDB(t)

	var count int64
	require.NoError(t, db.Model(&models.Cart{}).Count(&count).Error)
	assert.Zero(t, count)

	cart, err := GetOrCreate(db, userOwner())
	require.NoError(t, err)
	assert.True(t, cart.IsActive)
	assert.Empty(t, cart.Items)

	// Second access resolves to the same cart.
	again, err := GetOrCreate(db, userOwner())
	require.NoError(t, err)
	assert.Equal(t, cart.ID, again.ID)

	require.NoError(t, db.Model(&models.Cart{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestAddItemRecomputesTotals(t *testing.T) {
	db := newTestDB(t)
	a, b := seedProducts(t, db)

	cart, err := AddItem(db, userOwner(), a.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, cart.TotalItems)
	assert.Equal(t, 20.0, cart.TotalAmount)

	cart, err = AddItem(db, userOwner(), b.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, cart.TotalItems)
	assert.Equal(t, 25.0, cart.TotalAmount)
	assert.Len(t, cart.Items, 2)
}

func TestAddItemMergesExistingLine(t *testing.T) {
	db := newTestDB(t)
	a, _ := seedProducts(t, db)

	_, err := AddItem(db, userOwner(), a.ID, 2)
	require.NoError(t, err)
	cart, err := AddItem(db, userOwner(), a.ID, 3)
	require.NoError(t, err)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, 5, cart.Items[0].Quantity)
	assert.Equal(t, 5, cart.TotalItems)
	assert.Equal(t, 50.0, cart.TotalAmount)
}

func TestAddItemSnapshotsProduct(t *testing.T) {
	db := newTestDB(t)
	a, _ := seedProducts(t, db)

	cart, err := AddItem(db, userOwner(), a.ID, 1)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)

	// Raising the catalog price must not touch the cart line.
	require.NoError(t, db.Model(&models.Product{}).Where("id = ?", a.ID).Update("price", 99).Error)

	fresh, err := GetOrCreate(db, userOwner())
	require.NoError(t, err)
	assert.Equal(t, 10.0, fresh.Items[0].Price)
	assert.Equal(t, "Desk Lamp", fresh.Items[0].Title)
}

func TestAddItemUnknownProduct(t *testing.T) {
	db := newTestDB(t)

	_, err := AddItem(db, userOwner(), 404, 1)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestSetQuantity(t *testing.T) {
	db := newTestDB(t)
	a, _ := seedProducts(t, db)

	_, err := AddItem(db, userOwner(), a.ID, 2)
	require.NoError(t, err)

	cart, err := SetQuantity(db, userOwner(), a.ID, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, cart.TotalItems)
	assert.Equal(t, 40.0, cart.TotalAmount)
}

func TestSetQuantityZeroRemovesLine(t *testing.T) {
	db := newTestDB(t)
	a, b := seedProducts(t, db)

	_, err := AddItem(db, userOwner(), a.ID, 2)
	require.NoError(t, err)
	_, err = AddItem(db, userOwner(), b.ID, 1)
	require.NoError(t, err)

	cart, err := SetQuantity(db, userOwner(), b.ID, 0)
	require.NoError(t, err)
	assert.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.TotalItems)
	assert.Equal(t, 20.0, cart.TotalAmount)

	cart, err = SetQuantity(db, userOwner(), a.ID, -3)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.Zero(t, cart.TotalItems)
	assert.Zero(t, cart.TotalAmount)
}

func TestSetQuantityChecksStock(t *testing.T) {
	db := newTestDB(t)
	a, _ := seedProducts(t, db)

	_, err := AddItem(db, userOwner(), a.ID, 2)
	require.NoError(t, err)

	_, err = SetQuantity(db, userOwner(), a.ID, 11)
	assert.ErrorIs(t, err, ErrInsufficientStock)

	// Adding beyond stock is deliberately allowed; only quantity
	// updates and checkout validate stock.
	cart, err := AddItem(db, userOwner(), a.ID, 50)
	require.NoError(t, err)
	assert.Equal(t, 52, cart.TotalItems)
}

func TestRemoveItem(t *testing.T) {
	db := newTestDB(t)
	a, b := seedProducts(t, db)

	_, err := AddItem(db, userOwner(), a.ID, 2)
	require.NoError(t, err)
	_, err = AddItem(db, userOwner(), b.ID, 1)
	require.NoError(t, err)

	cart, err := RemoveItem(db, userOwner(), b.ID)
	require.NoError(t, err)
	assert.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.TotalItems)
	assert.Equal(t, 20.0, cart.TotalAmount)

	_, err = RemoveItem(db, userOwner(), b.ID)
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestClear(t *testing.T) {
	db := newTestDB(t)
	a, b := seedProducts(t, db)

	_, err := AddItem(db, userOwner(), a.ID, 2)
	require.NoError(t, err)
	_, err = AddItem(db, userOwner(), b.ID, 5)
	require.NoError(t, err)

	cart, err := Clear(db, userOwner())
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.Zero(t, cart.TotalItems)
	assert.Zero(t, cart.TotalAmount)
}

func TestMergeReownsGuestCartWhenUserHasNone(t *testing.T) {
	db := newTestDB(t)
	a, _ := seedProducts(t, db)

	guestCart, err := AddItem(db, guestOwner(), a.ID, 2)
	require.NoError(t, err)

	merged, err := Merge(db, guestOwner().ID, "user-1")
	require.NoError(t, err)

	assert.Equal(t, guestCart.ID, merged.ID)
	require.NotNil(t, merged.UserID)
	assert.Equal(t, "user-1", *merged.UserID)
	assert.Empty(t, merged.GuestID)
	assert.True(t, merged.IsActive)
	assert.Equal(t, 2, merged.TotalItems)
}

func TestMergeUnionsIntoExistingUserCart(t *testing.T) {
	db := newTestDB(t)
	a, b := seedProducts(t, db)

	userCart, err := AddItem(db, userOwner(), a.ID, 2)
	require.NoError(t, err)
	guestCart, err := AddItem(db, guestOwner(), a.ID, 1)
	require.NoError(t, err)
	_, err = AddItem(db, guestOwner(), b.ID, 3)
	require.NoError(t, err)

	merged, err := Merge(db, guestOwner().ID, userOwner().ID)
	require.NoError(t, err)

	assert.Equal(t, userCart.ID, merged.ID)
	require.Len(t, merged.Items, 2)

	quantities := map[uint]int{}
	for _, item := range merged.Items {
		quantities[item.ProductID] = item.Quantity
	}
	assert.Equal(t, 3, quantities[a.ID])
	assert.Equal(t, 3, quantities[b.ID])
	assert.Equal(t, 6, merged.TotalItems)
	assert.Equal(t, 45.0, merged.TotalAmount)

	var stale models.Cart
	require.NoError(t, db.First(&stale, guestCart.ID).Error)
	assert.False(t, stale.IsActive)
}

func TestMergeWithoutGuestCart(t *testing.T) {
	db := newTestDB(t)

	_, err := Merge(db, "guest_missing", "user-1")
	assert.ErrorIs(t, err, ErrCartNotFound)
}
