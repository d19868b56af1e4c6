package auth

import (
	"testing"
	"time"

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
	require.NoError(t, db.AutoMigrate(&models.OTP{}))
	return db
}

func TestGenerateOTP(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		code, err := GenerateOTP()
		require.NoError(t, err)
		assert.Len(t, code, 6)
		assert.Regexp(t, `^\d{6}$`, code)
		seen[code] = true
	}
	assert.Greater(t, len(seen), 1, "codes should not all collide")
}

func TestIssueAndConsumeOTP(t *testing.T) {
	db := newTestDB(t)

	code, err := issueOTP(db, "user-1", models.OTPPurposeVerify)
	require.NoError(t, err)

	require.NoError(t, consumeOTP(db, "user-1", models.OTPPurposeVerify, code))

	// Single use.
	assert.ErrorIs(t, consumeOTP(db, "user-1", models.OTPPurposeVerify, code), ErrOTPInvalid)
}

func TestConsumeOTPWrongCode(t *testing.T) {
	db := newTestDB(t)

	_, err := issueOTP(db, "user-1", models.OTPPurposeVerify)
	require.NoError(t, err)

	assert.ErrorIs(t, consumeOTP(db, "user-1", models.OTPPurposeVerify, "000000"), ErrOTPInvalid)
}

func TestConsumeOTPWrongPurpose(t *testing.T) {
	db := newTestDB(t)

	code, err := issueOTP(db, "user-1", models.OTPPurposeVerify)
	require.NoError(t, err)

	assert.ErrorIs(t, consumeOTP(db, "user-1", models.OTPPurposePasswordReset, code), ErrOTPInvalid)
}

func TestConsumeOTPExpired(t *testing.T) {
	db := newTestDB(t)

	code, err := issueOTP(db, "user-1", models.OTPPurposeVerify)
	require.NoError(t, err)
	require.NoError(t, db.Model(&models.OTP{}).Where("user_id = ?", "user-1").
		Update("expires_at", time.Now().Add(-time.Minute)).Error)

	assert.ErrorIs(t, consumeOTP(db, "user-1", models.OTPPurposeVerify, code), ErrOTPInvalid)
}

func TestReissueReplacesOutstandingCode(t *testing.T) {
	db := newTestDB(t)

	first, err := issueOTP(db, "user-1", models.OTPPurposeVerify)
	require.NoError(t, err)
	second, err := issueOTP(db, "user-1", models.OTPPurposeVerify)
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&models.OTP{}).Where("user_id = ?", "user-1").Count(&count).Error)
	assert.Equal(t, int64(1), count)

	if first != second {
		assert.ErrorIs(t, consumeOTP(db, "user-1", models.OTPPurposeVerify, first), ErrOTPInvalid)
	}
	require.NoError(t, consumeOTP(db, "user-1", models.OTPPurposeVerify, second))
}
