package risk

import (
	"time"
)

type FlagType string

const (
	TypeLate1to7   FlagType = "LATE_1_7"
	TypeLate8to30  FlagType = "LATE_8_30"
	TypeLate31to60 FlagType = "LATE_31_60"
	TypeDefault    FlagType = "DEFAULT"
	TypeCleared    FlagType = "CLEARED"
)

func ValidFlagType(t FlagType) bool {
	switch t {
	case TypeLate1to7, TypeLate8to30, TypeLate31to60, TypeDefault, TypeCleared:
		return true
	}
	return false
}

type Origin string

const (
	OriginLenderReported Origin = "LENDER_REPORTED"
	OriginSystemAuto     Origin = "SYSTEM_AUTO"
)

// Flag is an append-only delinquency report against a borrower. Flags from
// different lenders are never merged; aggregation happens at read time.
// Resolution sets resolved_at and a reason but never deletes the row.
type Flag struct {
	ID               uint64     `gorm:"primaryKey;column:id" json:"-"`
	FlagID           string     `gorm:"size:32;uniqueIndex:ux_risk_flags_flag_id" json:"flag_id"`
	BorrowerID       string     `gorm:"size:32;index:idx_risk_flags_borrower_resolved,priority:1" json:"borrower_id"`
	Type             FlagType   `gorm:"type:enum('LATE_1_7','LATE_8_30','LATE_31_60','DEFAULT','CLEARED')" json:"type"`
	Origin           Origin     `gorm:"type:enum('LENDER_REPORTED','SYSTEM_AUTO')" json:"origin"`
	Reason           string     `gorm:"type:text" json:"reason"`
	AmountMinor      *int64     `gorm:"column:amount_minor" json:"amount_minor,omitempty"`
	ProofHash        string     `gorm:"size:128" json:"proof_hash"`
	CreatedBy        string     `gorm:"size:32;index:idx_risk_flags_created_by" json:"created_by"`
	ResolvedAt       *time.Time `gorm:"column:resolved_at;index:idx_risk_flags_borrower_resolved,priority:2" json:"resolved_at,omitempty"`
	ResolutionReason string     `gorm:"type:text" json:"resolution_reason,omitempty"`
	CreatedAt        time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (Flag) TableName() string { return "risk_flags" }

func (f *Flag) Resolved() bool { return f.ResolvedAt != nil }

// Summary is the read-side projection of a borrower's open risk exposure.
type Summary struct {
	BorrowerID        string           `json:"borrower_id"`
	DistinctReporters int              `json:"distinct_reporters"`
	OpenByType        map[FlagType]int `json:"open_by_type"`
	OpenTotal         int              `json:"open_total"`
	HasDefaults       bool             `json:"has_defaults"`
}

// Summarize aggregates unresolved flags into a Summary. Distinct reporters
// counts only lender-reported flags; system flags affect counts and defaults
// but not reporter visibility.
func Summarize(borrowerID string, open []*Flag) Summary {
	s := Summary{BorrowerID: borrowerID, OpenByType: make(map[FlagType]int)}
	reporters := make(map[string]struct{})
	for _, f := range open {
		if f.Resolved() {
			continue
		}
		s.OpenByType[f.Type]++
		s.OpenTotal++
		if f.Type == TypeDefault {
			s.HasDefaults = true
		}
		if f.Origin == OriginLenderReported {
			reporters[f.CreatedBy] = struct{}{}
		}
	}
	s.DistinctReporters = len(reporters)
	return s
}
