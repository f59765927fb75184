package entities

import "time"

// Entity is a sub-account cash flow entries are booked against. Owners see
// every entity they own; members see the ones granted to them.
type Entity struct {
	ID          string    `gorm:"type:uuid;primaryKey"`
	OwnerID     string    `gorm:"type:uuid;index;not null"`
	Name        string    `gorm:"not null"`
	Description string    `gorm:"not null"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

type Grant struct {
	UserID   string `gorm:"type:uuid;primaryKey"`
	EntityID string `gorm:"type:uuid;primaryKey"`
}

func (Grant) TableName() string {
	return "entity_users"
}

type Input struct {
	Name        string
	Description string
}
