package repositories

import (
	"errors"
	"fmt"

	"payloow/internal/models"

	"gorm.io/gorm"
)

var (
	ErrDVANotFound  = errors.New("dva not found")
	ErrDuplicateDVA = errors.New("dva already exists for user")
)

type DVARepository interface {
	GetByUserID(userID uint) (*models.DVA, error)
	GetByCustomerCode(code string) (*models.DVA, error)

	// Bind persists the DVA and the owning user's updated flags in one
	// storage transaction, so a half-written binding cannot exist.
	Bind(dva *models.DVA, user *models.User) error
}

type dvaRepository struct {
	db *gorm.DB
}

func NewDVARepository(db *gorm.DB) DVARepository {
	return &dvaRepository{db: db}
}

func (r *dvaRepository) GetByUserID(userID uint) (*models.DVA, error) {
	var dva models.DVA
	if err := r.db.Where("user_id = ?", userID).First(&dva).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDVANotFound
		}
		return nil, fmt.Errorf("failed to get dva: %w", err)
	}
	return &dva, nil
}

func (r *dvaRepository) GetByCustomerCode(code string) (*models.DVA, error) {
	var dva models.DVA
	if err := r.db.Where("customer_code = ?", code).First(&dva).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDVANotFound
		}
		return nil, fmt.Errorf("failed to get dva by customer code: %w", err)
	}
	return &dva, nil
}

func (r *dvaRepository) Bind(dva *models.DVA, user *models.User) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(dva).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateDVA
			}
			return fmt.Errorf("failed to create dva: %w", err)
		}

		user.BVNVerified = true
		user.DVAID = &dva.ID
		user.PaystackCustomerCode = dva.CustomerCode
		if err := tx.Save(user).Error; err != nil {
			return fmt.Errorf("failed to update user after dva bind: %w", err)
		}
		return nil
	})
}
