package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// StringList is stored as a JSONB array of strings.
type StringList []string

func (s StringList) Value() (driver.Value, error) {
	if s == nil {
		s = StringList{}
	}
	return json.Marshal(s)
}

func (s *StringList) Scan(value interface{}) error {
	if value == nil {
		*s = StringList{}
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("unsupported type for StringList: %T", value)
	}
	return json.Unmarshal(b, s)
}

// Lawyer is a directory entry. The matching pipeline only ever reads a
// filtered slice of these; it never writes them.
type Lawyer struct {
	ID           uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID       *uuid.UUID `gorm:"type:uuid" json:"user_id,omitempty"`
	Name         string     `gorm:"type:varchar(200);not null" json:"name"`
	Email        string     `gorm:"type:varchar(200);not null" json:"email"`
	Phone        string     `gorm:"type:varchar(32)" json:"phone,omitempty"`
	Avatar       string     `gorm:"type:text" json:"avatar,omitempty"`
	BarCouncilID string     `gorm:"type:varchar(64)" json:"bar_council_id,omitempty"`
	// Years of practice.
	Experience      int        `gorm:"not null;default:0" json:"experience"`
	Specializations StringList `gorm:"type:jsonb;default:'[]'" json:"specializations"`
	Languages       StringList `gorm:"type:jsonb;default:'[]'" json:"languages"`
	City            string     `gorm:"type:varchar(100)" json:"city,omitempty"`
	State           string     `gorm:"type:varchar(100)" json:"state,omitempty"`
	Rating          float64    `gorm:"not null;default:4.5" json:"rating"`
	ReviewCount     int        `gorm:"not null;default:0" json:"review_count"`
	ConsultationFee int        `gorm:"not null;default:0" json:"consultation_fee"`
	HourlyRate      int        `gorm:"not null;default:0" json:"hourly_rate"`
	IsAvailable     bool       `gorm:"not null;default:true;index" json:"is_available"`
	ResponseTime    string     `gorm:"type:varchar(32);default:'2-4 hours'" json:"response_time"`
	CasesHandled    int        `gorm:"not null;default:0" json:"cases_handled"`
	SuccessRate     float64    `gorm:"not null;default:95" json:"success_rate"`
	Bio             string     `gorm:"type:text" json:"bio,omitempty"`
	Verified        bool       `gorm:"not null;default:false" json:"verified"`
	CreatedAt       time.Time  `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (Lawyer) TableName() string {
	return "lawyers"
}

// CandidateProfile is the bounded view of a lawyer serialized into the
// matching prompt. Internal fields like fees stay out of the payload.
type CandidateProfile struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Specializations []string  `json:"specializations"`
	Experience      int       `json:"experience"`
	Rating          float64   `json:"rating"`
	City            string    `json:"city"`
	State           string    `json:"state"`
	Languages       []string  `json:"languages"`
}

// ToCandidateProfile projects a directory entry into the matching payload.
func (l *Lawyer) ToCandidateProfile() CandidateProfile {
	return CandidateProfile{
		ID:              l.ID,
		Name:            l.Name,
		Specializations: l.Specializations,
		Experience:      l.Experience,
		Rating:          l.Rating,
		City:            l.City,
		State:           l.State,
		Languages:       l.Languages,
	}
}
