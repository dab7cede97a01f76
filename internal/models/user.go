package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"
)

// User roles.
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// CartData maps productID -> size -> quantity. It is stored as a single
// JSON column on the user record so reading and replacing a cart is one
// row-level operation.
type CartData map[string]map[string]int

// Value implements driver.Valuer for GORM.
func (c CartData) Value() (driver.Value, error) {
	if c == nil {
		c = CartData{}
	}
	return json.Marshal(c)
}

// Scan implements sql.Scanner for GORM.
func (c *CartData) Scan(value interface{}) error {
	if value == nil {
		*c = CartData{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, c)
	case string:
		return json.Unmarshal([]byte(v), c)
	default:
		return fmt.Errorf("unsupported cart data type %T", value)
	}
}

// User represents a customer or admin account.
type User struct {
	ID         string   `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name       string   `json:"name" gorm:"type:varchar(100)" validate:"required,min=2,max=100"`
	Email      string   `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Password   string   `json:"-" gorm:"type:varchar(255)" validate:"required,min=8"`
	Role       string   `json:"role" gorm:"type:varchar(20);default:'customer'"`
	CartData   CartData `json:"cartData" gorm:"type:text"`
	gorm.Model          // CreatedAt, UpdatedAt, DeletedAt
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
