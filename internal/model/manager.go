package model

import "time"

// Manager links a delegate user to a todo they help manage. The delegate
// is always distinct from the todo's owner.
type Manager struct {
	ID     uint `json:"id" gorm:"primaryKey"`
	UserID uint `json:"user_id" gorm:"not null;index"`
	TodoID uint `json:"todo_id" gorm:"not null;index"`

	CreatedAt time.Time `json:"created_at"`

	// Relations
	User User `json:"-" gorm:"foreignKey:UserID"`
	Todo Todo `json:"-" gorm:"foreignKey:TodoID"`
}
