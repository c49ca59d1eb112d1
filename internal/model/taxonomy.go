package model

import "time"

// Department is a flat reference lookup; list/get only.
type Department struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"uniqueIndex;size:255;not null"`
	IsActive  bool      `json:"is_active" gorm:"default:true"`
	CreatedAt time.Time `json:"created_at"`
}

// Category belongs to a department by name.
type Category struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	Name       string    `json:"name" gorm:"size:255;not null"`
	Department string    `json:"department" gorm:"size:255;index"`
	CreatedAt  time.Time `json:"created_at"`
}

// SubCategory belongs to a category by name.
type SubCategory struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"size:255;not null"`
	CategoryName string    `json:"category_name" gorm:"size:255;index"`
	CreatedAt    time.Time `json:"created_at"`
}
