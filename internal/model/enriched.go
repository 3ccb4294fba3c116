package model

import "time"

// EnrichedContract is a contract row after bluecard enrichment, feature
// derivation, and risk scoring. One row per surviving contract.
type EnrichedContract struct {
	ContractRecord

	// Pulled from the matching bluecard; nil on a join miss.
	BlueCardNumber    *string    `json:"blue_card_number,omitempty"`
	BlueCardCreated   *time.Time `json:"blue_card_created,omitempty"`
	BlueCardEventDate *time.Time `json:"blue_card_event_date,omitempty"`

	// Engineered features.
	OverdueDepositFlag   int      `json:"overdue_deposit_flag"`
	OverdueSignatureFlag int      `json:"overdue_signature_flag"`
	StatusRiskFlag       int      `json:"status_risk_flag"`
	FinancialDelta       *float64 `json:"financial_delta,omitempty"`
	IssueToEventDays     *int     `json:"issue_to_event_days,omitempty"`
	FirstTimePresenter   bool     `json:"is_first_time_presenter"`
	FinancialAnomalyFlag int      `json:"financial_anomaly_flag"`

	RiskScore int `json:"risk_score"`
}

// RunStatus is the lifecycle state of a pipeline run.
type RunStatus string

const (
	RunStatusRunning  RunStatus = "running"
	RunStatusComplete RunStatus = "complete"
	RunStatusFailed   RunStatus = "failed"
)

// Run records one batch execution of the pipeline.
type Run struct {
	ID        string     `json:"id"`
	Status    RunStatus  `json:"status"`
	Counts    RunCounts  `json:"counts"`
	Error     string     `json:"error,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// RunCounts summarizes table sizes at each stage of a run.
type RunCounts struct {
	ContractsIn       int `json:"contracts_in"`
	ContractsCleaned  int `json:"contracts_cleaned"`
	BlueCardsIn       int `json:"bluecards_in"`
	BlueCardsCleaned  int `json:"bluecards_cleaned"`
	PresentersIn      int `json:"presenters_in"`
	PresentersCleaned int `json:"presenters_cleaned"`
	LeadsIn           int `json:"leads_in"`
	LeadsCleaned      int `json:"leads_cleaned"`
	Enriched          int `json:"enriched"`
	JoinMisses        int `json:"join_misses"`
}
