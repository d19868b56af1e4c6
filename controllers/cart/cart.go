package cartControllers

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/nimbusmart/commerce-api/models"
)

var (
	ErrCartNotFound      = errors.New("cart not found")
	ErrProductNotFound   = errors.New("product does not exist")
	ErrItemNotFound      = errors.New("cart item not found")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// Owner identifies whose cart is being operated on: a registered user
// id, or a client-held guest id.
type Owner struct {
	ID    string
	Guest bool
}

func activeCartQuery(db *gorm.DB, o Owner) *gorm.DB {
	if o.Guest {
		return db.Where("guest_id = ? AND is_active = ?", o.ID, true)
	}
	return db.Where("user_id = ? AND is_active = ?", o.ID, true)
}

// GetOrCreate resolves the owner's active cart, creating an empty one
// lazily on first access. At most one active cart exists per identity.
func GetOrCreate(db *gorm.DB, o Owner) (*models.Cart, error) {
	var cart models.Cart
	err := activeCartQuery(db, o).Preload("Items").First(&cart).Error
	if err == nil {
		return &cart, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	cart = models.Cart{IsActive: true}
	if o.Guest {
		cart.GuestID = o.ID
	} else {
		uid := o.ID
		cart.UserID = &uid
	}
	if err := db.Create(&cart).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

// AddItem puts a product into the cart, merging the quantity into an
// existing line when the product is already present. Stock is not
// checked here; that happens at quantity updates and checkout.
func AddItem(db *gorm.DB, o Owner, productID uint, quantity int) (*models.Cart, error) {
	var product models.Product
	if err := db.First(&product, "id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	cart, err := GetOrCreate(db, o)
	if err != nil {
		return nil, err
	}

	var item models.CartItem
	err = db.Where("cart_id = ? AND product_id = ?", cart.ID, productID).First(&item).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		item = models.CartItem{
			CartID:    cart.ID,
			ProductID: product.ID,
			Title:     product.Name,
			Price:     product.Price,
			Thumbnail: product.Thumbnail,
			Quantity:  quantity,
			AddedAt:   time.Now(),
		}
		if err := db.Create(&item).Error; err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	default:
		item.Quantity += quantity
		item.AddedAt = time.Now()
		if err := db.Save(&item).Error; err != nil {
			return nil, err
		}
	}

	return recalc(db, cart.ID)
}

// SetQuantity sets a line's quantity outright. Zero or less removes the
// line. The requested quantity is validated against live catalog stock.
func SetQuantity(db *gorm.DB, o Owner, productID uint, quantity int) (*models.Cart, error) {
	cart, err := findActiveCart(db, o)
	if err != nil {
		return nil, err
	}

	var item models.CartItem
	if err := db.Where("cart_id = ? AND product_id = ?", cart.ID, productID).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}

	if quantity <= 0 {
		if err := db.Delete(&item).Error; err != nil {
			return nil, err
		}
		return recalc(db, cart.ID)
	}

	var product models.Product
	if err := db.First(&product, "id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	if product.Stock < quantity {
		return nil, ErrInsufficientStock
	}

	item.Quantity = quantity
	item.AddedAt = time.Now()
	if err := db.Save(&item).Error; err != nil {
		return nil, err
	}
	return recalc(db, cart.ID)
}

// RemoveItem drops a line from the cart.
func RemoveItem(db *gorm.DB, o Owner, productID uint) (*models.Cart, error) {
	cart, err := findActiveCart(db, o)
	if err != nil {
		return nil, err
	}

	result := db.Where("cart_id = ? AND product_id = ?", cart.ID, productID).Delete(&models.CartItem{})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrItemNotFound
	}
	return recalc(db, cart.ID)
}

// Clear removes every line from the cart.
func Clear(db *gorm.DB, o Owner) (*models.Cart, error) {
	cart, err := findActiveCart(db, o)
	if err != nil {
		return nil, err
	}
	if err := db.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
		return nil, err
	}
	return recalc(db, cart.ID)
}

// Merge folds a guest cart into a user's cart on login. If the user has
// no active cart the guest cart is simply re-owned; otherwise line items
// are summed by product id and the guest cart is deactivated.
func Merge(db *gorm.DB, guestID, userID string) (*models.Cart, error) {
	var guestCart models.Cart
	err := db.Where("guest_id = ? AND is_active = ?", guestID, true).
		Preload("Items").First(&guestCart).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCartNotFound
		}
		return nil, err
	}

	var userCart models.Cart
	err = db.Where("user_id = ? AND is_active = ?", userID, true).First(&userCart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// Re-own the guest cart.
		updates := map[string]any{"user_id": userID, "guest_id": ""}
		if err := db.Model(&guestCart).Updates(updates).Error; err != nil {
			return nil, err
		}
		return recalc(db, guestCart.ID)
	}
	if err != nil {
		return nil, err
	}

	mergeErr := db.Transaction(func(tx *gorm.DB) error {
		for _, line := range guestCart.Items {
			var item models.CartItem
			err := tx.Where("cart_id = ? AND product_id = ?", userCart.ID, line.ProductID).First(&item).Error
			switch {
			case errors.Is(err, gorm.ErrRecordNotFound):
				moved := models.CartItem{
					CartID:    userCart.ID,
					ProductID: line.ProductID,
					Title:     line.Title,
					Price:     line.Price,
					Thumbnail: line.Thumbnail,
					Quantity:  line.Quantity,
					AddedAt:   time.Now(),
				}
				if err := tx.Create(&moved).Error; err != nil {
					return err
				}
			case err != nil:
				return err
			default:
				item.Quantity += line.Quantity
				if err := tx.Save(&item).Error; err != nil {
					return err
				}
			}
		}
		return tx.Model(&guestCart).Update("is_active", false).Error
	})
	if mergeErr != nil {
		return nil, mergeErr
	}
	return recalc(db, userCart.ID)
}

func findActiveCart(db *gorm.DB, o Owner) (*models.Cart, error) {
	var cart models.Cart
	if err := activeCartQuery(db, o).First(&cart).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCartNotFound
		}
		return nil, err
	}
	return &cart, nil
}

// recalc recomputes cached totals from the current lines. Cached totals
// are never trusted across mutations.
func recalc(db *gorm.DB, cartID uint) (*models.Cart, error) {
	var cart models.Cart
	if err := db.Preload("Items").First(&cart, cartID).Error; err != nil {
		return nil, err
	}

	totalItems := 0
	totalAmount := 0.0
	for _, item := range cart.Items {
		totalItems += item.Quantity
		totalAmount += item.Price * float64(item.Quantity)
	}

	cart.TotalItems = totalItems
	cart.TotalAmount = totalAmount
	if err := db.Model(&models.Cart{}).Where("id = ?", cart.ID).
		Updates(map[string]any{"total_items": totalItems, "total_amount": totalAmount}).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}
