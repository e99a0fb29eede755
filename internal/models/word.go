package models

import (
	"time"

	"gorm.io/datatypes"
)

// Word is a vocabulary item. Conversations are keyed by Word.ID.
type Word struct {
	ID      string `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Chinese string `gorm:"column:chinese;type:text" json:"chinese"`
	Pinyin  string `gorm:"column:pinyin;type:text" json:"pinyin"`
	English string `gorm:"column:english;type:text" json:"english"`

	// HSK level or custom deck tags, ex: ["hsk2", "travel"].
	Tags datatypes.JSON `gorm:"column:tags;type:jsonb" json:"tags,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;type:timestamptz" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamptz" json:"updated_at"`
}

func (Word) TableName() string { return "words" }
