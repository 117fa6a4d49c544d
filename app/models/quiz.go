package models

import (
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

// Quiz groups ordered questions for one level + subject.
type Quiz struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Title     string         `gorm:"type:varchar(255);not null" json:"title"`
	LevelID   uint           `gorm:"not null;index" json:"level_id"`
	Level     Level          `gorm:"foreignKey:LevelID" json:"level,omitempty"`
	SubjectID uint           `gorm:"not null;index" json:"subject_id"`
	Subject   Subject        `gorm:"foreignKey:SubjectID" json:"subject,omitempty"`
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	Questions []Question     `gorm:"foreignKey:QuizID" json:"questions,omitempty"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// Question carries its answer options as a JSON array in OptionsJSON.
// CorrectIndex and Explanation are never serialized; the read API strips them
// and only the grading path consults them.
type Question struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	QuizID       uint      `gorm:"not null;index" json:"quiz_id"`
	Position     int       `gorm:"not null;default:0" json:"position"`
	Text         string    `gorm:"type:text;not null" json:"text"`
	OptionsJSON  string    `gorm:"type:text;not null" json:"-"`
	CorrectIndex int       `gorm:"not null" json:"-"`
	Points       int       `gorm:"not null;default:1" json:"points"`
	Explanation  string    `gorm:"type:text" json:"-"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// Options decodes the stored JSON option list. A malformed value yields an
// empty slice rather than an error; writes go through SetOptions.
func (q *Question) Options() []string {
	if q.OptionsJSON == "" {
		return []string{}
	}
	var opts []string
	if err := json.Unmarshal([]byte(q.OptionsJSON), &opts); err != nil {
		return []string{}
	}
	return opts
}

// SetOptions encodes and stores the option list.
func (q *Question) SetOptions(opts []string) error {
	data, err := json.Marshal(opts)
	if err != nil {
		return err
	}
	q.OptionsJSON = string(data)
	return nil
}
