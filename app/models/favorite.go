package models

import "time"

// Favorite links a user to a bookmarked document, unique per pair.
type Favorite struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;uniqueIndex:ux_favorites_user_document,priority:1" json:"user_id"`
	DocumentID uint      `gorm:"not null;uniqueIndex:ux_favorites_user_document,priority:2;index" json:"document_id"`
	Document   Document  `gorm:"foreignKey:DocumentID" json:"document,omitempty"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}
