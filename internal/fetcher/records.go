package fetcher

import (
	"strconv"
	"strings"

	"github.com/sells-group/contract-risk/internal/model"
)

// Column names as they appear in the source exports. Matching is
// normalized, so casing and separator differences don't matter.
const (
	colPresenter      = "PRESENTER"
	colVenueName      = "VENUE NAME"
	colAgent          = "AGENT"
	colGross          = "$GROSS"
	colArtistNet      = "ARTIST NET"
	colCommission     = "$ECE TOTAL COMMISSION"
	colDepositDue     = "$DEPOSIT DUE AMOUNT"
	colFirstEventDate = "FIRST EVENT DATE"
	colIssueDate      = "ISSUE DATE"
	colOverdueDeposit = "OVERDUE DEPOSIT"
	colOverdueSig     = "OVERDUE SIGNATURE"
	colStatus         = "STATUS"
	colBlueCardNumber = "# BLUE CARD"
	colCreatedDate    = "CREATED DATE"
	colOrganization   = "ORGANIZATION"
	colEmail          = "EMAIL"
	colCityState      = "PHYSICAL CITY/STATE"
	colHomeOffice     = "HOME OFFICE"
	colEventDate      = "EVENT DATE"
	colClosedDate     = "CLOSED DATE"
	colReferralSource = "REFERRAL SOURCE"
)

// Contracts maps a raw table into contract records.
func Contracts(t *Table) []model.ContractRecord {
	out := make([]model.ContractRecord, 0, t.Len())
	for i := 0; i < t.Len(); i++ {
		out = append(out, model.ContractRecord{
			Presenter:        t.Cell(i, colPresenter),
			VenueName:        t.Cell(i, colVenueName),
			Agent:            t.Cell(i, colAgent),
			Gross:            cellFloat(t, i, colGross),
			ArtistNetRaw:     t.Cell(i, colArtistNet),
			Commission:       cellFloat(t, i, colCommission),
			DepositDueAmount: cellFloat(t, i, colDepositDue),
			FirstEventDate:   t.Cell(i, colFirstEventDate),
			IssueDate:        t.Cell(i, colIssueDate),
			OverdueDeposit:   t.Cell(i, colOverdueDeposit),
			OverdueSignature: t.Cell(i, colOverdueSig),
			Status:           t.Cell(i, colStatus),
		})
	}
	return out
}

// BlueCards maps a raw table into bluecard records.
func BlueCards(t *Table) []model.BlueCardRecord {
	out := make([]model.BlueCardRecord, 0, t.Len())
	for i := 0; i < t.Len(); i++ {
		out = append(out, model.BlueCardRecord{
			BlueCardNumber: t.Cell(i, colBlueCardNumber),
			Presenter:      t.Cell(i, colPresenter),
			VenueName:      t.Cell(i, colVenueName),
			Agent:          t.Cell(i, colAgent),
			CreatedDateRaw: t.Cell(i, colCreatedDate),
			FirstEventDate: t.Cell(i, colFirstEventDate),
		})
	}
	return out
}

// Presenters maps a raw table into presenter records.
func Presenters(t *Table) []model.PresenterRecord {
	out := make([]model.PresenterRecord, 0, t.Len())
	for i := 0; i < t.Len(); i++ {
		out = append(out, model.PresenterRecord{
			Name:              t.Cell(i, colPresenter),
			Organization:      t.Cell(i, colOrganization),
			Email:             t.Cell(i, colEmail),
			PhysicalCityState: t.Cell(i, colCityState),
		})
	}
	return out
}

// Leads maps a raw table into lead records.
func Leads(t *Table) []model.LeadRecord {
	out := make([]model.LeadRecord, 0, t.Len())
	for i := 0; i < t.Len(); i++ {
		out = append(out, model.LeadRecord{
			Agent:          t.Cell(i, colAgent),
			HomeOffice:     t.Cell(i, colHomeOffice),
			EventDateRaw:   t.Cell(i, colEventDate),
			ClosedDate:     t.Cell(i, colClosedDate),
			ReferralSource: t.Cell(i, colReferralSource),
		})
	}
	return out
}

// cellFloat parses a numeric cell, stripping currency formatting.
// Empty or unparsable cells are null.
func cellFloat(t *Table, i int, name string) *float64 {
	cell := t.Cell(i, name)
	if cell == nil {
		return nil
	}
	s := strings.NewReplacer("$", "", ",", "", " ", "").Replace(*cell)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}
