// Package cleaner applies per-dataset cleaning rules: dropping rows
// that fail each table's required-field rule and deriving the cleaned
// columns the downstream join and feature stages depend on. Cleaners
// take ownership of their input slice and return it filtered in place.
package cleaner

import (
	"sort"

	"go.uber.org/zap"

	"github.com/sells-group/contract-risk/internal/model"
	"github.com/sells-group/contract-risk/internal/normalize"
)

// citystateSentinel is the placeholder the booking system emits for an
// unknown presenter city/state.
const citystateSentinel = "--"

// Contracts drops any row with a null value in any raw column, then
// derives the cleaned string columns, the parsed artist-net amount,
// and the parsed event date.
func Contracts(rows []model.ContractRecord) []model.ContractRecord {
	out := rows[:0]
	dropped := 0
	for _, r := range rows {
		if contractHasNull(r) {
			dropped++
			continue
		}
		r.PresenterClean = normalize.CleanString(r.Presenter)
		r.VenueClean = normalize.CleanString(r.VenueName)
		r.AgentClean = normalize.CleanString(r.Agent)
		r.ArtistNet = normalize.ParseCurrency(r.ArtistNetRaw)
		r.EventDate = normalize.ParseDate(r.FirstEventDate)
		out = append(out, r)
	}
	if dropped > 0 {
		zap.L().Debug("cleaner: dropped contract rows", zap.Int("dropped", dropped))
	}
	return out
}

func contractHasNull(r model.ContractRecord) bool {
	return r.Presenter == nil || r.VenueName == nil || r.Agent == nil ||
		r.Gross == nil || r.ArtistNetRaw == nil || r.Commission == nil ||
		r.DepositDueAmount == nil || r.FirstEventDate == nil || r.IssueDate == nil ||
		r.OverdueDeposit == nil || r.OverdueSignature == nil || r.Status == nil
}

// BlueCards drops rows with a null first-event date, parses the created
// date, stable-sorts ascending by created date, assigns the 1-based
// rolling count in that order, and derives created year plus the same
// cleaned columns as Contracts.
func BlueCards(rows []model.BlueCardRecord) []model.BlueCardRecord {
	out := rows[:0]
	dropped := 0
	for _, r := range rows {
		if r.FirstEventDate == nil {
			dropped++
			continue
		}
		r.CreatedDate = normalize.ParseDate(r.CreatedDateRaw)
		r.PresenterClean = normalize.CleanString(r.Presenter)
		r.VenueClean = normalize.CleanString(r.VenueName)
		r.AgentClean = normalize.CleanString(r.Agent)
		r.EventDate = normalize.ParseDate(r.FirstEventDate)
		out = append(out, r)
	}
	if dropped > 0 {
		zap.L().Debug("cleaner: dropped bluecard rows", zap.Int("dropped", dropped))
	}

	SortByCreated(out)
	for i := range out {
		out[i].RollingCount = i + 1
		if out[i].CreatedDate != nil {
			y := out[i].CreatedDate.Year()
			out[i].CreatedYear = &y
		} else {
			out[i].CreatedYear = nil
		}
	}
	return out
}

// SortByCreated stable-sorts bluecards ascending by created date. Rows
// with a nil created date sort after all dated rows, keeping their
// relative order.
func SortByCreated(rows []model.BlueCardRecord) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i].CreatedDate, rows[j].CreatedDate
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.Before(*b)
		}
	})
}

// Presenters maps the "--" city/state sentinel to null, then drops rows
// with a null city/state.
func Presenters(rows []model.PresenterRecord) []model.PresenterRecord {
	out := rows[:0]
	dropped := 0
	for _, r := range rows {
		if r.PhysicalCityState != nil && isSentinel(*r.PhysicalCityState) {
			r.PhysicalCityState = nil
		}
		if r.PhysicalCityState == nil {
			dropped++
			continue
		}
		out = append(out, r)
	}
	if dropped > 0 {
		zap.L().Debug("cleaner: dropped presenter rows", zap.Int("dropped", dropped))
	}
	return out
}

func isSentinel(s string) bool {
	return model.String(normalize.CleanString(&s)) == citystateSentinel
}

// Leads drops rows missing agent, home office, event date, closed date,
// or referral source, then parses the event date. An unparsable event
// date becomes nil but the row is retained.
func Leads(rows []model.LeadRecord) []model.LeadRecord {
	out := rows[:0]
	dropped := 0
	for _, r := range rows {
		if r.Agent == nil || r.HomeOffice == nil || r.EventDateRaw == nil ||
			r.ClosedDate == nil || r.ReferralSource == nil {
			dropped++
			continue
		}
		r.EventDate = normalize.ParseDate(r.EventDateRaw)
		out = append(out, r)
	}
	if dropped > 0 {
		zap.L().Debug("cleaner: dropped lead rows", zap.Int("dropped", dropped))
	}
	return out
}
