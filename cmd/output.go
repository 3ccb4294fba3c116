package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/contract-risk/internal/model"
	"github.com/sells-group/contract-risk/internal/normalize"
)

// scoredHeader matches the source export naming convention so the
// output drops into the same downstream spreadsheets.
var scoredHeader = []string{
	"PRESENTER_CLEAN", "VENUE_CLEAN", "AGENT_CLEAN", "MATCH_KEY",
	"# BLUE CARD", "BLUE_CARD_CREATED", "BLUE_CARD_EVENT_DATE",
	"OVERDUE_DEPOSIT_FLAG", "OVERDUE_SIGNATURE_FLAG", "STATUS_RISK_FLAG",
	"FINANCIAL_DELTA", "ISSUE_TO_EVENT_DAYS", "IS_FIRST_TIME_PRESENTER",
	"FINANCIAL_ANOMALY_FLAG", "RISK_SCORE",
}

// writeScoredCSV writes the enriched table as CSV. Null cells are
// empty strings.
func writeScoredCSV(w io.Writer, rows []model.EnrichedContract) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(scoredHeader); err != nil {
		return eris.Wrap(err, "write header")
	}
	for _, r := range rows {
		record := []string{
			model.String(r.PresenterClean),
			model.String(r.VenueClean),
			model.String(r.AgentClean),
			r.MatchKey,
			model.String(r.BlueCardNumber),
			dateCell(r.BlueCardCreated),
			dateCell(r.BlueCardEventDate),
			strconv.Itoa(r.OverdueDepositFlag),
			strconv.Itoa(r.OverdueSignatureFlag),
			strconv.Itoa(r.StatusRiskFlag),
			floatCell(r.FinancialDelta),
			intCell(r.IssueToEventDays),
			strconv.FormatBool(r.FirstTimePresenter),
			strconv.Itoa(r.FinancialAnomalyFlag),
			strconv.Itoa(r.RiskScore),
		}
		if err := cw.Write(record); err != nil {
			return eris.Wrap(err, "write row")
		}
	}
	cw.Flush()
	return eris.Wrap(cw.Error(), "flush csv")
}

// printSummary writes a short human-readable run summary.
func printSummary(w io.Writer, counts model.RunCounts, rows []model.EnrichedContract) {
	fmt.Fprintf(w, "contracts:  %d in, %d cleaned\n", counts.ContractsIn, counts.ContractsCleaned)
	fmt.Fprintf(w, "bluecards:  %d in, %d cleaned\n", counts.BlueCardsIn, counts.BlueCardsCleaned)
	fmt.Fprintf(w, "presenters: %d in, %d cleaned\n", counts.PresentersIn, counts.PresentersCleaned)
	fmt.Fprintf(w, "leads:      %d in, %d cleaned\n", counts.LeadsIn, counts.LeadsCleaned)
	fmt.Fprintf(w, "enriched:   %d rows (%d join misses)\n", counts.Enriched, counts.JoinMisses)

	if len(rows) == 0 {
		return
	}
	high := 0
	for _, r := range rows {
		if r.RiskScore >= 10 {
			high++
		}
	}
	fmt.Fprintf(w, "high risk:  %d rows with score >= 10\n", high)
}

func dateCell(t *time.Time) string {
	if t == nil {
		return ""
	}
	return normalize.FormatDate(t)
}

func floatCell(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'f', 2, 64)
}

func intCell(i *int) string {
	if i == nil {
		return ""
	}
	return strconv.Itoa(*i)
}
