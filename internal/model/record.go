// Package model defines the record types flowing through the contract
// risk pipeline. Raw fields are pointers: a nil pointer is a null cell
// in the source table, and every derived field that can fail to parse
// stays nullable after cleaning.
package model

import "time"

// ContractRecord is one row of the contracts export.
type ContractRecord struct {
	Presenter        *string  `json:"presenter"`
	VenueName        *string  `json:"venue_name"`
	Agent            *string  `json:"agent"`
	Gross            *float64 `json:"gross"`
	ArtistNetRaw     *string  `json:"artist_net"`
	Commission       *float64 `json:"commission"`
	DepositDueAmount *float64 `json:"deposit_due_amount"`
	FirstEventDate   *string  `json:"first_event_date"`
	IssueDate        *string  `json:"issue_date"`
	OverdueDeposit   *string  `json:"overdue_deposit"`
	OverdueSignature *string  `json:"overdue_signature"`
	Status           *string  `json:"status"`

	// Derived by the cleaner / key builder.
	PresenterClean *string    `json:"presenter_clean,omitempty"`
	VenueClean     *string    `json:"venue_clean,omitempty"`
	AgentClean     *string    `json:"agent_clean,omitempty"`
	ArtistNet      *float64   `json:"artist_net_cleaned,omitempty"`
	EventDate      *time.Time `json:"event_date_clean,omitempty"`
	MatchKey       string     `json:"match_key,omitempty"`
}

// BlueCardRecord is one row of the bluecard confirmation export.
type BlueCardRecord struct {
	BlueCardNumber *string `json:"blue_card_number"`
	Presenter      *string `json:"presenter"`
	VenueName      *string `json:"venue_name"`
	Agent          *string `json:"agent"`
	CreatedDateRaw *string `json:"created_date"`
	FirstEventDate *string `json:"first_event_date"`

	// Derived by the cleaner / key builder.
	CreatedDate    *time.Time `json:"created_date_clean,omitempty"`
	CreatedYear    *int       `json:"created_year,omitempty"`
	RollingCount   int        `json:"rolling_count,omitempty"`
	PresenterClean *string    `json:"presenter_clean,omitempty"`
	VenueClean     *string    `json:"venue_clean,omitempty"`
	AgentClean     *string    `json:"agent_clean,omitempty"`
	EventDate      *time.Time `json:"event_date_clean,omitempty"`
	MatchKey       string     `json:"match_key,omitempty"`
}

// PresenterRecord is one row of the presenter profile export.
type PresenterRecord struct {
	Name              *string `json:"name"`
	Organization      *string `json:"organization"`
	Email             *string `json:"email"`
	PhysicalCityState *string `json:"physical_city_state"`
}

// LeadRecord is one row of the sales lead export.
type LeadRecord struct {
	Agent          *string `json:"agent"`
	HomeOffice     *string `json:"home_office"`
	EventDateRaw   *string `json:"event_date"`
	ClosedDate     *string `json:"closed_date"`
	ReferralSource *string `json:"referral_source"`

	EventDate *time.Time `json:"event_date_clean,omitempty"`
}

// String dereferences a nullable string, returning "" for null.
func String(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// StringPtr returns a pointer to s. Convenience for building records.
func StringPtr(s string) *string { return &s }

// FloatPtr returns a pointer to f.
func FloatPtr(f float64) *float64 { return &f }

// IntPtr returns a pointer to i.
func IntPtr(i int) *int { return &i }

// TimePtr returns a pointer to t.
func TimePtr(t time.Time) *time.Time { return &t }
