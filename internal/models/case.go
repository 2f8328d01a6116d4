package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type CaseStatus string

const (
	StatusDraft            CaseStatus = "draft"
	StatusProcessing       CaseStatus = "processing"
	StatusMatching         CaseStatus = "matching"
	StatusAwaitingResponse CaseStatus = "awaiting-response"
	StatusMatched          CaseStatus = "matched"
	StatusInProgress       CaseStatus = "in-progress"
	StatusCompleted        CaseStatus = "completed"
	StatusCancelled        CaseStatus = "cancelled"
)

// statusOrder encodes the forward-only lifecycle. Cancelled sits outside
// the ordering and is handled separately.
var statusOrder = map[CaseStatus]int{
	StatusDraft:            0,
	StatusProcessing:       1,
	StatusMatching:         2,
	StatusAwaitingResponse: 3,
	StatusMatched:          4,
	StatusInProgress:       5,
	StatusCompleted:        6,
}

// IsTerminal reports whether no further transitions are allowed.
func (s CaseStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CanTransitionTo reports whether moving from s to next is legal: statuses
// only move forward, except that any non-terminal case may be cancelled.
func (s CaseStatus) CanTransitionTo(next CaseStatus) bool {
	if s.IsTerminal() {
		return false
	}
	if next == StatusCancelled {
		return true
	}
	from, ok := statusOrder[s]
	if !ok {
		return false
	}
	to, ok := statusOrder[next]
	if !ok {
		return false
	}
	return to > from
}

type CaseCategory string

const (
	CategoryCorporate            CaseCategory = "corporate"
	CategoryIntellectualProperty CaseCategory = "intellectual-property"
	CategoryEmployment           CaseCategory = "employment"
	CategoryContracts            CaseCategory = "contracts"
	CategoryCompliance           CaseCategory = "compliance"
	CategoryFundraising          CaseCategory = "fundraising"
	CategoryDisputes             CaseCategory = "disputes"
	CategoryRealEstate           CaseCategory = "real-estate"
	CategoryTax                  CaseCategory = "tax"
	CategoryOther                CaseCategory = "other"
)

var validCategories = map[CaseCategory]bool{
	CategoryCorporate:            true,
	CategoryIntellectualProperty: true,
	CategoryEmployment:           true,
	CategoryContracts:            true,
	CategoryCompliance:           true,
	CategoryFundraising:          true,
	CategoryDisputes:             true,
	CategoryRealEstate:           true,
	CategoryTax:                  true,
	CategoryOther:                true,
}

// NormalizeCategory coerces unknown values from the AI to the default.
func NormalizeCategory(raw string) CaseCategory {
	c := CaseCategory(raw)
	if validCategories[c] {
		return c
	}
	return CategoryOther
}

type CaseUrgency string

const (
	UrgencyLow      CaseUrgency = "low"
	UrgencyMedium   CaseUrgency = "medium"
	UrgencyHigh     CaseUrgency = "high"
	UrgencyCritical CaseUrgency = "critical"
)

// NormalizeUrgency coerces unknown values from the AI to the default.
func NormalizeUrgency(raw string) CaseUrgency {
	switch u := CaseUrgency(raw); u {
	case UrgencyLow, UrgencyMedium, UrgencyHigh, UrgencyCritical:
		return u
	default:
		return UrgencyMedium
	}
}

type MatchStatus string

const (
	MatchPending    MatchStatus = "pending"
	MatchInterested MatchStatus = "interested"
	MatchDeclined   MatchStatus = "declined"
)

// MatchedLawyer is one entry of a case's ranked match list.
type MatchedLawyer struct {
	LawyerID        uuid.UUID   `json:"lawyerId"`
	MatchScore      int         `json:"matchScore"`
	Status          MatchStatus `json:"status"`
	ResponseMessage string      `json:"responseMessage,omitempty"`
	RespondedAt     *time.Time  `json:"respondedAt,omitempty"`
}

// MatchedLawyers is stored as a single JSONB column.
type MatchedLawyers []MatchedLawyer

func (m MatchedLawyers) Value() (driver.Value, error) {
	if m == nil {
		m = MatchedLawyers{}
	}
	return json.Marshal(m)
}

func (m *MatchedLawyers) Scan(value interface{}) error {
	if value == nil {
		*m = MatchedLawyers{}
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("unsupported type for MatchedLawyers: %T", value)
	}
	return json.Unmarshal(b, m)
}

// Contains reports whether the given lawyer is present in the match list.
func (m MatchedLawyers) Contains(lawyerID uuid.UUID) bool {
	for _, entry := range m {
		if entry.LawyerID == lawyerID {
			return true
		}
	}
	return false
}

// CaseDocument is an uploaded file descriptor attached to a case.
type CaseDocument struct {
	Name       string    `json:"name"`
	URL        string    `json:"url"`
	Type       string    `json:"type"`
	UploadedAt time.Time `json:"uploadedAt"`
}

type CaseDocuments []CaseDocument

func (d CaseDocuments) Value() (driver.Value, error) {
	if d == nil {
		d = CaseDocuments{}
	}
	return json.Marshal(d)
}

func (d *CaseDocuments) Scan(value interface{}) error {
	if value == nil {
		*d = CaseDocuments{}
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("unsupported type for CaseDocuments: %T", value)
	}
	return json.Unmarshal(b, d)
}

// Case is one user's legal problem and its tracked lifecycle.
type Case struct {
	ID               uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID           uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	OriginalProblem  string         `gorm:"type:text;not null" json:"original_problem"`
	ProcessedProblem string         `gorm:"type:text" json:"processed_problem"`
	Category         CaseCategory   `gorm:"type:varchar(32);not null;default:'other'" json:"category"`
	Urgency          CaseUrgency    `gorm:"type:varchar(16);not null;default:'medium'" json:"urgency"`
	Status           CaseStatus     `gorm:"type:varchar(32);not null;default:'draft'" json:"status"`
	MatchedLawyers   MatchedLawyers `gorm:"type:jsonb;default:'[]'" json:"matched_lawyers"`
	SelectedLawyerID *uuid.UUID     `gorm:"type:uuid" json:"selected_lawyer_id,omitempty"`
	Documents        CaseDocuments  `gorm:"type:jsonb;default:'[]'" json:"documents"`
	// Version implements optimistic concurrency on pipeline writes.
	Version   int       `gorm:"not null;default:0" json:"-"`
	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Case) TableName() string {
	return "cases"
}
