package auth

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"gorm.io/gorm"

	"github.com/nimbusmart/commerce-api/models"
)

const otpTTL = 10 * time.Minute

var ErrOTPInvalid = errors.New("invalid or expired code")

// GenerateOTP returns a 6-digit numeric code.
func GenerateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// issueOTP replaces any outstanding code for the user/purpose pair and
// persists a fresh one.
func issueOTP(db *gorm.DB, userID, purpose string) (string, error) {
	code, err := GenerateOTP()
	if err != nil {
		return "", err
	}
	if err := db.Where("user_id = ? AND purpose = ?", userID, purpose).Delete(&models.OTP{}).Error; err != nil {
		return "", err
	}
	otp := models.OTP{
		UserID:    userID,
		Code:      code,
		Purpose:   purpose,
		ExpiresAt: time.Now().Add(otpTTL),
	}
	if err := db.Create(&otp).Error; err != nil {
		return "", err
	}
	return code, nil
}

// consumeOTP validates the code and deletes it on success.
func consumeOTP(db *gorm.DB, userID, purpose, code string) error {
	var otp models.OTP
	err := db.Where("user_id = ? AND purpose = ? AND code = ?", userID, purpose, code).First(&otp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOTPInvalid
		}
		return err
	}
	if time.Now().After(otp.ExpiresAt) {
		return ErrOTPInvalid
	}
	return db.Delete(&otp).Error
}
