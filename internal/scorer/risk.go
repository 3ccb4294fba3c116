// Package scorer computes the composite risk score for enriched
// contracts: an additive weighted sum over boolean red-flag
// indicators. Comparisons against a null operand contribute 0, never
// fail.
package scorer

import (
	"go.uber.org/zap"

	"github.com/sells-group/contract-risk/internal/model"
)

// Weights holds the per-indicator weights and the two numeric
// thresholds. The defaults are the hand-tuned production values.
type Weights struct {
	LowDeposit       int `yaml:"low_deposit" mapstructure:"low_deposit"`
	FirstTime        int `yaml:"first_time" mapstructure:"first_time"`
	ShortLead        int `yaml:"short_lead" mapstructure:"short_lead"`
	OverdueDeposit   int `yaml:"overdue_deposit" mapstructure:"overdue_deposit"`
	OverdueSignature int `yaml:"overdue_signature" mapstructure:"overdue_signature"`
	FinancialAnomaly int `yaml:"financial_anomaly" mapstructure:"financial_anomaly"`
	StatusRisk       int `yaml:"status_risk" mapstructure:"status_risk"`

	DepositThreshold  float64 `yaml:"deposit_threshold" mapstructure:"deposit_threshold"`
	LeadDaysThreshold int     `yaml:"lead_days_threshold" mapstructure:"lead_days_threshold"`
}

// DefaultWeights returns the production scoring weights.
func DefaultWeights() Weights {
	return Weights{
		LowDeposit:        3,
		FirstTime:         2,
		ShortLead:         4,
		OverdueDeposit:    2,
		OverdueSignature:  1,
		FinancialAnomaly:  3,
		StatusRisk:        2,
		DepositThreshold:  500,
		LeadDaysThreshold: 30,
	}
}

// RiskScorer applies a weight set to enriched contract rows.
type RiskScorer struct {
	w Weights
}

// New creates a RiskScorer. Zero-valued weights are replaced with the
// defaults so a partial config can't silently zero out the score.
func New(w Weights) *RiskScorer {
	if w == (Weights{}) {
		w = DefaultWeights()
	}
	return &RiskScorer{w: w}
}

// Score computes the risk score for one row. Nil deposit amount or nil
// issue-to-event days make their comparison false and contribute 0.
func (s *RiskScorer) Score(row *model.EnrichedContract) int {
	score := 0
	if row.DepositDueAmount != nil && *row.DepositDueAmount < s.w.DepositThreshold {
		score += s.w.LowDeposit
	}
	if row.FirstTimePresenter {
		score += s.w.FirstTime
	}
	if row.IssueToEventDays != nil && *row.IssueToEventDays < s.w.LeadDaysThreshold {
		score += s.w.ShortLead
	}
	score += s.w.OverdueDeposit * row.OverdueDepositFlag
	score += s.w.OverdueSignature * row.OverdueSignatureFlag
	score += s.w.FinancialAnomaly * row.FinancialAnomalyFlag
	score += s.w.StatusRisk * row.StatusRiskFlag
	return score
}

// ScoreAll stamps RiskScore on every row and logs the distribution
// bounds.
func (s *RiskScorer) ScoreAll(rows []model.EnrichedContract) {
	if len(rows) == 0 {
		return
	}
	minScore, maxScore := -1, -1
	for i := range rows {
		rows[i].RiskScore = s.Score(&rows[i])
		if minScore == -1 || rows[i].RiskScore < minScore {
			minScore = rows[i].RiskScore
		}
		if rows[i].RiskScore > maxScore {
			maxScore = rows[i].RiskScore
		}
	}
	zap.L().Info("scorer: scored contracts",
		zap.Int("rows", len(rows)),
		zap.Int("min", minScore),
		zap.Int("max", maxScore),
	)
}
