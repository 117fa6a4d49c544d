package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	DocumentTypeSubject    = "subject"
	DocumentTypeCorrection = "correction"
)

// Document is an exam paper or its correction, stored as an external file.
type Document struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	Title         string         `gorm:"type:varchar(255);not null" json:"title"`
	LevelID       uint           `gorm:"not null;index" json:"level_id"`
	Level         Level          `gorm:"foreignKey:LevelID" json:"level,omitempty"`
	SubjectID     uint           `gorm:"not null;index" json:"subject_id"`
	Subject       Subject        `gorm:"foreignKey:SubjectID" json:"subject,omitempty"`
	Type          string         `gorm:"type:varchar(32);not null;default:'subject'" json:"type"`
	Year          int            `gorm:"not null;index" json:"year"`
	IsPremium     bool           `gorm:"default:false" json:"is_premium"`
	FileURL       string         `gorm:"type:varchar(500);not null" json:"file_url"`
	ViewCount     int64          `gorm:"default:0" json:"view_count"`
	DownloadCount int64          `gorm:"default:0" json:"download_count"`
	CreatedAt     time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}
