package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type SenderType string

const (
	SenderClient SenderType = "client"
	SenderLawyer SenderType = "lawyer"
)

// Attachment is a file reference carried on a message.
type Attachment struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	Type string `json:"type"`
}

type Attachments []Attachment

func (a Attachments) Value() (driver.Value, error) {
	if a == nil {
		a = Attachments{}
	}
	return json.Marshal(a)
}

func (a *Attachments) Scan(value interface{}) error {
	if value == nil {
		*a = Attachments{}
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("unsupported type for Attachments: %T", value)
	}
	return json.Unmarshal(b, a)
}

// Message is one entry in a case's chat thread.
type Message struct {
	ID          uuid.UUID   `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CaseID      uuid.UUID   `gorm:"type:uuid;not null;index" json:"case_id"`
	SenderID    uuid.UUID   `gorm:"type:uuid;not null" json:"sender_id"`
	SenderType  SenderType  `gorm:"type:varchar(16);not null;default:'client'" json:"sender_type"`
	Content     string      `gorm:"type:text;not null" json:"content"`
	Attachments Attachments `gorm:"type:jsonb;default:'[]'" json:"attachments"`
	Read        bool        `gorm:"not null;default:false" json:"read"`
	CreatedAt   time.Time   `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (Message) TableName() string {
	return "messages"
}
