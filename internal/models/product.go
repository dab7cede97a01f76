package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"
)

// StringList is a JSON-encoded list column, used for product images,
// sizes and detail bullet points.
type StringList []string

// Value implements driver.Valuer for GORM.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner for GORM.
func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = StringList{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("unsupported list type %T", value)
	}
}

// Product represents a catalog item. Images is the normalized ordered
// list of stored file paths; there is no legacy single-image field.
type Product struct {
	ID          string     `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name        string     `json:"name" gorm:"type:varchar(100)" validate:"required,min=2,max=100"`
	Price       float64    `json:"price" validate:"required,gt=0"`
	Category    string     `json:"category" gorm:"type:varchar(50)" validate:"required"`
	SubCategory string     `json:"subCategory" gorm:"type:varchar(50)"`
	Description string     `json:"description" gorm:"type:text" validate:"omitempty,max=2000"`
	Details     StringList `json:"details" gorm:"type:text"`
	Sizes       StringList `json:"sizes" gorm:"type:text"`
	Images      StringList `json:"images" gorm:"type:text"`
	Bestseller  bool       `json:"bestseller"`
	gorm.Model             // CreatedAt, UpdatedAt, DeletedAt
}
