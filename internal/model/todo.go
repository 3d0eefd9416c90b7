package model

import "time"

// Todo is a task record owned by exactly one user. Weather holds the
// condition reported by the weather feed at creation time and never
// changes afterwards.
type Todo struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	Title    string `json:"title" gorm:"size:255;not null"`
	Contents string `json:"contents" gorm:"type:text"`
	Weather  string `json:"weather" gorm:"size:100"`
	UserID   uint   `json:"user_id" gorm:"not null;index"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at" gorm:"index"`

	// Relations
	User User `json:"-" gorm:"foreignKey:UserID"`
}
