// Package enrich joins cleaned contracts to their bluecard
// confirmations and derives the engineered risk features. The join is
// deliberately loose: the composite match key is the only linkage the
// two exports share, so many contracts may map to one bluecard and a
// miss keeps the contract with null enrichment columns.
package enrich

import (
	"math"
	"strings"

	"go.uber.org/zap"

	"github.com/sells-group/contract-risk/internal/cleaner"
	"github.com/sells-group/contract-risk/internal/model"
	"github.com/sells-group/contract-risk/internal/normalize"
)

// statusRiskKeywords flag a contract whose free-text status suggests
// trouble.
var statusRiskKeywords = []string{"cancel", "overdue", "pending", "hold"}

// anomalySigma is the threshold multiplier for the financial anomaly
// flag: |delta| must exceed this many standard deviations.
const anomalySigma = 3.0

// Enrich deduplicates bluecards per match key (earliest created wins),
// left-joins the contracts onto them, and derives the feature columns.
// Contracts with no matching bluecard are kept with nil bluecard
// columns.
func Enrich(contracts []model.ContractRecord, bluecards []model.BlueCardRecord) []model.EnrichedContract {
	deduped := DedupBlueCards(bluecards)

	byKey := make(map[string]model.BlueCardRecord, len(deduped))
	for _, b := range deduped {
		if b.MatchKey == "" {
			continue
		}
		byKey[b.MatchKey] = b
	}

	enriched := make([]model.EnrichedContract, 0, len(contracts))
	misses := 0
	for _, c := range contracts {
		row := model.EnrichedContract{ContractRecord: c}
		if b, ok := byKey[c.MatchKey]; ok {
			row.BlueCardNumber = b.BlueCardNumber
			row.BlueCardCreated = b.CreatedDate
			row.BlueCardEventDate = b.EventDate
		} else {
			misses++
		}
		deriveRowFeatures(&row)
		enriched = append(enriched, row)
	}

	markFirstTimePresenters(enriched)
	markFinancialAnomalies(enriched)

	zap.L().Info("enrich: joined contracts to bluecards",
		zap.Int("contracts", len(contracts)),
		zap.Int("bluecards_deduped", len(deduped)),
		zap.Int("join_misses", misses),
	)

	return enriched
}

// DedupBlueCards keeps the earliest-created bluecard per match key.
// Ties on created date keep the first row in original order (the sort
// is stable).
func DedupBlueCards(rows []model.BlueCardRecord) []model.BlueCardRecord {
	sorted := append([]model.BlueCardRecord(nil), rows...)
	cleaner.SortByCreated(sorted)

	seen := make(map[string]bool, len(sorted))
	out := sorted[:0]
	for _, b := range sorted {
		if seen[b.MatchKey] {
			continue
		}
		seen[b.MatchKey] = true
		out = append(out, b)
	}
	return out
}

// deriveRowFeatures computes the per-row features: overdue flags,
// status risk, financial delta, and issue-to-event days.
func deriveRowFeatures(row *model.EnrichedContract) {
	row.OverdueDepositFlag = yesFlag(row.OverdueDeposit)
	row.OverdueSignatureFlag = yesFlag(row.OverdueSignature)
	row.StatusRiskFlag = statusRisk(row.Status)
	row.FinancialDelta = financialDelta(row.Gross, row.ArtistNet, row.Commission)
	row.IssueToEventDays = issueToEventDays(row)
}

// yesFlag is 1 iff the raw text equals "yes" ignoring case. No
// trimming: surrounding whitespace means the cell is not a yes.
func yesFlag(s *string) int {
	if s != nil && strings.EqualFold(*s, "yes") {
		return 1
	}
	return 0
}

func statusRisk(status *string) int {
	if status == nil {
		return 0
	}
	lower := strings.ToLower(*status)
	for _, kw := range statusRiskKeywords {
		if strings.Contains(lower, kw) {
			return 1
		}
	}
	return 0
}

// financialDelta = gross - artistNet - commission, nil if any operand
// is nil.
func financialDelta(gross, artistNet, commission *float64) *float64 {
	if gross == nil || artistNet == nil || commission == nil {
		return nil
	}
	d := *gross - *artistNet - *commission
	return &d
}

// issueToEventDays is the span from issue date to event date floored
// to whole days, nil if either date is missing or unparsable.
func issueToEventDays(row *model.EnrichedContract) *int {
	issue := row.IssueDate
	if row.EventDate == nil || issue == nil {
		return nil
	}
	parsed := normalize.ParseDate(issue)
	if parsed == nil {
		return nil
	}
	days := int(math.Floor(row.EventDate.Sub(*parsed).Hours() / 24))
	return &days
}

// markFirstTimePresenters sets FirstTimePresenter on rows whose cleaned
// presenter appears exactly once across the whole table. Requires the
// table to be fully materialized; this is a single frequency pass, not
// a per-row lookup.
func markFirstTimePresenters(rows []model.EnrichedContract) {
	counts := make(map[string]int, len(rows))
	for _, r := range rows {
		if r.PresenterClean != nil {
			counts[*r.PresenterClean]++
		}
	}
	for i := range rows {
		p := rows[i].PresenterClean
		rows[i].FirstTimePresenter = p != nil && counts[*p] == 1
	}
}

// markFinancialAnomalies flags rows whose |financial delta| exceeds
// anomalySigma standard deviations. The deviation is the sample
// standard deviation over all non-nil deltas, computed once per table.
// With fewer than two samples, or a zero deviation, no row is flagged.
func markFinancialAnomalies(rows []model.EnrichedContract) {
	std := deltaStdDev(rows)
	if std == 0 || math.IsNaN(std) {
		return
	}
	threshold := anomalySigma * std
	for i := range rows {
		d := rows[i].FinancialDelta
		if d != nil && math.Abs(*d) > threshold {
			rows[i].FinancialAnomalyFlag = 1
		}
	}
}

// deltaStdDev returns the sample standard deviation (n-1 denominator)
// of the non-nil financial deltas, or 0 when undefined.
func deltaStdDev(rows []model.EnrichedContract) float64 {
	var (
		sum float64
		n   int
	)
	for _, r := range rows {
		if r.FinancialDelta != nil {
			sum += *r.FinancialDelta
			n++
		}
	}
	if n < 2 {
		return 0
	}
	mean := sum / float64(n)
	var ss float64
	for _, r := range rows {
		if r.FinancialDelta != nil {
			d := *r.FinancialDelta - mean
			ss += d * d
		}
	}
	return math.Sqrt(ss / float64(n-1))
}
