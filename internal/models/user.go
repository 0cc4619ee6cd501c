package models

import (
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Email                string `gorm:"uniqueIndex;not null"`
	FirstName            string `gorm:"not null"`
	LastName             string `gorm:"not null"`
	Phone                string `gorm:"uniqueIndex;not null"`
	Role                 string `gorm:"default:'user'"`
	PaystackCustomerCode string `gorm:"index"` // assigned by the processor on first contact
	BVNVerified          bool   `gorm:"default:false"`
	DVAID                *uint  `gorm:"unique;default:null"`
}
