// Package gorm provides GORM model definitions and repository
// implementations for the inventory store and the action log.
package gorm

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// FoodItemModel represents the GORM model for food items
type FoodItemModel struct {
	ID      uuid.UUID `gorm:"type:char(36);primaryKey"`
	UserID  uuid.UUID `gorm:"type:char(36);not null;index"`
	Version int64     `gorm:"default:1"`

	Name   string  `gorm:"type:varchar(255);not null;index"`
	Amount float64 `gorm:"not null;check:amount >= 0"`
	Unit   string  `gorm:"type:varchar(20);not null"`
	Label  string  `gorm:"type:varchar(20);not null;index"`

	EatByDate        time.Time `gorm:"not null;index"`
	DateCookedStored time.Time
	FreshnessDays    int `gorm:"default:1"`

	StorageLocation string      `gorm:"type:varchar(100)"`
	Notes           string      `gorm:"type:text"`
	Tags            StringSlice `gorm:"type:json"`

	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
}

// ActionLogModel represents the GORM model for the append-only action log
type ActionLogModel struct {
	ID         uuid.UUID `gorm:"type:char(36);primaryKey"`
	UserID     uuid.UUID `gorm:"type:char(36);not null;index:idx_action_user_type"`
	ActionType string    `gorm:"type:varchar(20);not null;index:idx_action_user_type"`
	ItemName   string    `gorm:"type:varchar(255);not null"`
	CreatedAt  time.Time `gorm:"index"`
}

// StringSlice custom type for handling string slices in JSON
type StringSlice []string

// Scan implements the sql.Scanner interface
func (s *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*s = StringSlice{}
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return fmt.Errorf("cannot scan %T into StringSlice", value)
	}
}

// Value implements the driver.Valuer interface
func (s StringSlice) Value() (driver.Value, error) {
	if len(s) == 0 {
		return "[]", nil
	}
	return json.Marshal(s)
}

// TableName methods for custom table names
func (FoodItemModel) TableName() string {
	return "food_items"
}

func (ActionLogModel) TableName() string {
	return "action_log"
}
