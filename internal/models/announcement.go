package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Announcement is one generated host break: what was said, which slot
// it filled, and whether the audio made it into the station library.
type Announcement struct {
	gorm.Model
	UUID     string `json:"uuid" gorm:"uniqueIndex;not null"`
	Category string `json:"category" gorm:"not null;index"` // outro, intro, random
	Text     string `json:"text" gorm:"type:text;not null"`
	Filename string `json:"filename"`
	Artist   string `json:"artist"`
	Title    string `json:"title"`

	// Delivery outcome
	Uploaded    bool   `json:"uploaded" gorm:"default:false"`
	MediaID     int    `json:"media_id"`
	ErrorDetail string `json:"error_detail,omitempty"`
}

// BeforeCreate assigns the public identifier.
func (a *Announcement) BeforeCreate(tx *gorm.DB) error {
	if a.UUID == "" {
		a.UUID = uuid.NewString()
	}
	return nil
}
