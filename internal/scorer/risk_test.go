package scorer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sells-group/contract-risk/internal/model"
)

func TestScore_BoundaryRow(t *testing.T) {
	s := New(DefaultWeights())
	row := model.EnrichedContract{
		ContractRecord: model.ContractRecord{
			DepositDueAmount: model.FloatPtr(400),
		},
		FirstTimePresenter:   true,
		IssueToEventDays:     model.IntPtr(10),
		OverdueDepositFlag:   1,
		OverdueSignatureFlag: 1,
		FinancialAnomalyFlag: 0,
		StatusRiskFlag:       0,
	}
	// 3 + 2 + 4 + 2 + 1 + 0 + 0
	assert.Equal(t, 12, s.Score(&row))
}

func TestScore_ZeroRow(t *testing.T) {
	s := New(DefaultWeights())
	row := model.EnrichedContract{
		ContractRecord: model.ContractRecord{
			DepositDueAmount: model.FloatPtr(5000),
		},
		IssueToEventDays: model.IntPtr(90),
	}
	assert.Equal(t, 0, s.Score(&row))
}

func TestScore_MaxRow(t *testing.T) {
	s := New(DefaultWeights())
	row := model.EnrichedContract{
		ContractRecord: model.ContractRecord{
			DepositDueAmount: model.FloatPtr(0),
		},
		FirstTimePresenter:   true,
		IssueToEventDays:     model.IntPtr(0),
		OverdueDepositFlag:   1,
		OverdueSignatureFlag: 1,
		FinancialAnomalyFlag: 1,
		StatusRiskFlag:       1,
	}
	assert.Equal(t, 17, s.Score(&row))
}

func TestScore_NullComparisonsContributeZero(t *testing.T) {
	s := New(DefaultWeights())
	row := model.EnrichedContract{
		// Nil deposit amount and nil days: both threshold terms drop out.
		OverdueDepositFlag: 1,
	}
	assert.Equal(t, 2, s.Score(&row))
}

func TestScore_ThresholdEdges(t *testing.T) {
	s := New(DefaultWeights())

	exactDeposit := model.EnrichedContract{
		ContractRecord: model.ContractRecord{DepositDueAmount: model.FloatPtr(500)},
	}
	assert.Equal(t, 0, s.Score(&exactDeposit), "500 is not < 500")

	exactDays := model.EnrichedContract{IssueToEventDays: model.IntPtr(30)}
	assert.Equal(t, 0, s.Score(&exactDays), "30 is not < 30")

	justUnder := model.EnrichedContract{IssueToEventDays: model.IntPtr(29)}
	assert.Equal(t, 4, s.Score(&justUnder))
}

func TestNew_ZeroWeightsFallBackToDefaults(t *testing.T) {
	s := New(Weights{})
	row := model.EnrichedContract{FirstTimePresenter: true}
	assert.Equal(t, 2, s.Score(&row))
}

func TestScoreAll_StampsEveryRow(t *testing.T) {
	s := New(DefaultWeights())
	rows := []model.EnrichedContract{
		{FirstTimePresenter: true},
		{OverdueSignatureFlag: 1},
	}
	s.ScoreAll(rows)
	assert.Equal(t, 2, rows[0].RiskScore)
	assert.Equal(t, 1, rows[1].RiskScore)
}
