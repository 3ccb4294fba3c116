package cleaner

import (
	"github.com/sells-group/contract-risk/internal/model"
	"github.com/sells-group/contract-risk/internal/normalize"
)

// matchKeyVenueMissing stands in for a null venue inside a match key.
const matchKeyVenueMissing = "na"

// BuildMatchKeys rederives the cleaned columns on both tables and
// stamps each row with its composite match key. Rederivation is
// idempotent, so calling this on already-cleaned tables is safe.
//
// The key is presenter + "_" + venue (or "na") + "_" + event date as
// YYYY-MM-DD. A null event date formats as the literal "nan" (see
// normalize.FormatDate). A row with a null presenter gets an empty key
// and is excluded from joining, since no contract key is ever empty.
func BuildMatchKeys(contracts []model.ContractRecord, bluecards []model.BlueCardRecord) {
	for i := range contracts {
		c := &contracts[i]
		c.PresenterClean = normalize.CleanString(c.Presenter)
		c.VenueClean = normalize.CleanString(c.VenueName)
		c.AgentClean = normalize.CleanString(c.Agent)
		c.EventDate = normalize.ParseDate(c.FirstEventDate)
		c.MatchKey = matchKey(c.PresenterClean, c.VenueClean, normalize.FormatDate(c.EventDate))
	}
	for i := range bluecards {
		b := &bluecards[i]
		b.PresenterClean = normalize.CleanString(b.Presenter)
		b.VenueClean = normalize.CleanString(b.VenueName)
		b.AgentClean = normalize.CleanString(b.Agent)
		b.EventDate = normalize.ParseDate(b.FirstEventDate)
		b.MatchKey = matchKey(b.PresenterClean, b.VenueClean, normalize.FormatDate(b.EventDate))
	}
}

func matchKey(presenter, venue *string, date string) string {
	if presenter == nil {
		return ""
	}
	v := matchKeyVenueMissing
	if venue != nil {
		v = *venue
	}
	return *presenter + "_" + v + "_" + date
}
