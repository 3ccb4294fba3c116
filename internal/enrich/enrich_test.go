package enrich

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/contract-risk/internal/cleaner"
	"github.com/sells-group/contract-risk/internal/model"
)

func contract(presenter, venue, eventDate string) model.ContractRecord {
	return model.ContractRecord{
		Presenter:        model.StringPtr(presenter),
		VenueName:        model.StringPtr(venue),
		Agent:            model.StringPtr("agent"),
		Gross:            model.FloatPtr(10000),
		ArtistNetRaw:     model.StringPtr("($ 7,500.00)"),
		Commission:       model.FloatPtr(1500),
		DepositDueAmount: model.FloatPtr(400),
		FirstEventDate:   model.StringPtr(eventDate),
		IssueDate:        model.StringPtr("2023-05-01"),
		OverdueDeposit:   model.StringPtr("No"),
		OverdueSignature: model.StringPtr("No"),
		Status:           model.StringPtr("Confirmed"),
	}
}

func bluecard(number, presenter, venue, eventDate, created string) model.BlueCardRecord {
	return model.BlueCardRecord{
		BlueCardNumber: model.StringPtr(number),
		Presenter:      model.StringPtr(presenter),
		VenueName:      model.StringPtr(venue),
		Agent:          model.StringPtr("agent"),
		CreatedDateRaw: model.StringPtr(created),
		FirstEventDate: model.StringPtr(eventDate),
	}
}

func prepare(contracts []model.ContractRecord, bluecards []model.BlueCardRecord) ([]model.ContractRecord, []model.BlueCardRecord) {
	contracts = cleaner.Contracts(contracts)
	bluecards = cleaner.BlueCards(bluecards)
	cleaner.BuildMatchKeys(contracts, bluecards)
	return contracts, bluecards
}

func TestDedupBlueCards_EarliestCreatedWins(t *testing.T) {
	_, bcs := prepare(nil, []model.BlueCardRecord{
		bluecard("BC-LATE", "Acme", "Hall", "2023-06-01", "2023-01-05"),
		bluecard("BC-EARLY", "Acme", "Hall", "2023-06-01", "2023-01-02"),
	})

	got := DedupBlueCards(bcs)
	require.Len(t, got, 1)
	assert.Equal(t, "BC-EARLY", model.String(got[0].BlueCardNumber))
}

func TestDedupBlueCards_TieKeepsOriginalOrder(t *testing.T) {
	_, bcs := prepare(nil, []model.BlueCardRecord{
		bluecard("BC-1", "Acme", "Hall", "2023-06-01", "2023-01-02"),
		bluecard("BC-2", "Acme", "Hall", "2023-06-01", "2023-01-02"),
	})

	got := DedupBlueCards(bcs)
	require.Len(t, got, 1)
	assert.Equal(t, "BC-1", model.String(got[0].BlueCardNumber))
}

func TestEnrich_JoinHitAndMiss(t *testing.T) {
	contracts, bcs := prepare(
		[]model.ContractRecord{
			contract("Acme", "Hall", "2023-06-01"),
			contract("Nomatch", "Elsewhere", "2023-08-01"),
		},
		[]model.BlueCardRecord{
			bluecard("BC-7", "ACME", "hall", "06/01/2023", "2023-01-02"),
		},
	)

	got := Enrich(contracts, bcs)
	require.Len(t, got, 2)

	hit := got[0]
	assert.Equal(t, "BC-7", model.String(hit.BlueCardNumber))
	require.NotNil(t, hit.BlueCardCreated)
	assert.Equal(t, "2023-01-02", hit.BlueCardCreated.Format("2006-01-02"))
	require.NotNil(t, hit.BlueCardEventDate)
	assert.Equal(t, "2023-06-01", hit.BlueCardEventDate.Format("2006-01-02"))

	miss := got[1]
	assert.Nil(t, miss.BlueCardNumber)
	assert.Nil(t, miss.BlueCardCreated)
	assert.Nil(t, miss.BlueCardEventDate)
}

func TestEnrich_OverdueAndStatusFlags(t *testing.T) {
	c := contract("Acme", "Hall", "2023-06-01")
	c.OverdueDeposit = model.StringPtr("YES")
	c.OverdueSignature = model.StringPtr("no")
	c.Status = model.StringPtr("Payment Overdue - On Hold")

	contracts, _ := prepare([]model.ContractRecord{c}, nil)
	got := Enrich(contracts, nil)
	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].OverdueDepositFlag)
	assert.Equal(t, 0, got[0].OverdueSignatureFlag)
	assert.Equal(t, 1, got[0].StatusRiskFlag)
}

func TestYesFlag_ExactEqualityNoTrim(t *testing.T) {
	assert.Equal(t, 1, yesFlag(model.StringPtr("yes")))
	assert.Equal(t, 1, yesFlag(model.StringPtr("YES")))
	assert.Equal(t, 1, yesFlag(model.StringPtr("Yes")))
	assert.Equal(t, 0, yesFlag(model.StringPtr(" yes")))
	assert.Equal(t, 0, yesFlag(model.StringPtr("yes ")))
	assert.Equal(t, 0, yesFlag(model.StringPtr("no")))
	assert.Equal(t, 0, yesFlag(nil))
}

func TestEnrich_NegativePartialDaySpanFloors(t *testing.T) {
	// Event at noon the day before issue: -0.5 days floors to -1.
	c := contract("Acme", "Hall", "2023-05-01 12:00:00")
	c.IssueDate = model.StringPtr("2023-05-02")

	contracts, _ := prepare([]model.ContractRecord{c}, nil)
	got := Enrich(contracts, nil)
	require.Len(t, got, 1)
	require.NotNil(t, got[0].IssueToEventDays)
	assert.Equal(t, -1, *got[0].IssueToEventDays)
}

func TestEnrich_FinancialDeltaAndDays(t *testing.T) {
	contracts, _ := prepare([]model.ContractRecord{contract("Acme", "Hall", "2023-06-01")}, nil)
	got := Enrich(contracts, nil)
	require.Len(t, got, 1)

	require.NotNil(t, got[0].FinancialDelta)
	assert.InDelta(t, 10000-7500-1500, *got[0].FinancialDelta, 1e-9)

	require.NotNil(t, got[0].IssueToEventDays)
	assert.Equal(t, 31, *got[0].IssueToEventDays) // 2023-05-01 -> 2023-06-01
}

func TestEnrich_NullOperandsPropagate(t *testing.T) {
	c := contract("Acme", "Hall", "2023-06-01")
	c.ArtistNetRaw = model.StringPtr("not currency")
	c.FirstEventDate = model.StringPtr("unknown")

	contracts, _ := prepare([]model.ContractRecord{c}, nil)
	got := Enrich(contracts, nil)
	require.Len(t, got, 1)
	assert.Nil(t, got[0].FinancialDelta)
	assert.Nil(t, got[0].IssueToEventDays)
}

func TestEnrich_FirstTimePresenter(t *testing.T) {
	contracts, _ := prepare([]model.ContractRecord{
		contract("acme", "Hall", "2023-06-01"),
		contract("beta", "Hall", "2023-06-02"),
		contract("beta", "Hall", "2023-06-03"),
		contract("beta", "Hall", "2023-06-04"),
	}, nil)

	got := Enrich(contracts, nil)
	require.Len(t, got, 4)
	assert.True(t, got[0].FirstTimePresenter)
	for _, r := range got[1:] {
		assert.False(t, r.FirstTimePresenter)
	}
}

func TestEnrich_FinancialAnomalyThreshold(t *testing.T) {
	// Deltas 0,0,0,0,100: sample std = sqrt(2000) ~= 44.72, threshold
	// ~= 134.2, so 100 is NOT anomalous under the sample convention.
	mk := func(gross float64) model.ContractRecord {
		c := contract("Acme", "Hall", "2023-06-01")
		c.Gross = model.FloatPtr(gross)
		c.ArtistNetRaw = model.StringPtr("($ 0.00)")
		c.Commission = model.FloatPtr(0)
		return c
	}
	contracts, _ := prepare([]model.ContractRecord{
		mk(0), mk(0), mk(0), mk(0), mk(100),
	}, nil)

	got := Enrich(contracts, nil)
	require.Len(t, got, 5)

	std := math.Sqrt(8000.0 / 4.0) // == deltaStdDev convention, n-1
	for _, r := range got {
		want := 0
		if r.FinancialDelta != nil && math.Abs(*r.FinancialDelta) > 3*std {
			want = 1
		}
		assert.Equal(t, want, r.FinancialAnomalyFlag)
	}
	assert.Equal(t, 0, got[4].FinancialAnomalyFlag)
}

func TestEnrich_AnomalyUndefinedStdDev(t *testing.T) {
	// One non-nil delta: std dev undefined, no flag set anywhere.
	contracts, _ := prepare([]model.ContractRecord{contract("Acme", "Hall", "2023-06-01")}, nil)
	got := Enrich(contracts, nil)
	require.Len(t, got, 1)
	assert.Equal(t, 0, got[0].FinancialAnomalyFlag)
}

func TestEnrich_ZeroStdDevNoFlags(t *testing.T) {
	contracts, _ := prepare([]model.ContractRecord{
		contract("Acme", "Hall", "2023-06-01"),
		contract("Beta", "Hall", "2023-06-02"),
	}, nil)
	got := Enrich(contracts, nil)
	require.Len(t, got, 2)
	for _, r := range got {
		assert.Equal(t, 0, r.FinancialAnomalyFlag)
	}
}
