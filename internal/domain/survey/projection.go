package survey

import (
	"math"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/PavaniTiago/lcp-network-api/internal/domain/entities"
)

const (
	unknownFundName = "Unknown Fund"
	unknownFundType = "Unknown"
)

var printer = message.NewPrinter(language.English)

// DeriveProjection builds the network directory summary of a completed
// response. The result replaces any previous projection of the same user.
func DeriveProjection(resp entities.SurveyResponse, now time.Time) entities.MemberSurvey {
	rec := resp.Record
	p := entities.MemberSurvey{
		UserID:           resp.UserID,
		SurveyYear:       resp.Year,
		FundName:         orDefault(rec.Text(FieldVehicleName), unknownFundName),
		FundType:         orDefault(rec.Text(FieldVehicleType), unknownFundType),
		InvestmentThesis: rec.Text(FieldThesis),
		SectorFocus:      entities.SortedKeys(rec.Allocation(FieldSectorsAllocation)),
		StageFocus:       append([]string{}, rec.SetOf(FieldFundStage)...),
		CompletedAt:      resp.CompletedAt,
		UpdatedAt:        now,
	}

	if sites := rec.SetOf(FieldVehicleWebsites); len(sites) > 0 {
		p.Website = sites[0]
	}
	if markets := rec.Allocation(FieldMarketsOperated); len(markets) > 0 {
		p.PrimaryInvestmentRegion = strings.Join(entities.SortedKeys(markets), ", ")
	}
	if n, ok := rec.Number(FieldLegalEntityFrom); ok && n > 0 {
		year := int(n)
		p.YearFounded = &year
	}
	if n, ok := rec.Number(FieldTeamSizeMax); ok && n > 0 {
		size := int(n)
		p.TeamSize = &size
	}

	lo, okMin := rec.Number(FieldTicketSizeMin)
	hi, okMax := rec.Number(FieldTicketSizeMax)
	if okMin && okMax && lo > 0 && hi > 0 {
		p.TypicalCheckSize = dollars(lo) + " - " + dollars(hi)
	}
	if raised, ok := rec.Number(FieldCapitalRaised); ok && raised > 0 {
		p.AUM = dollars(raised)
	}
	return p
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

// dollars formats an amount with thousands separators, e.g. $1,250,000.
func dollars(v float64) string {
	if v == math.Trunc(v) {
		return printer.Sprintf("$%d", int64(v))
	}
	return printer.Sprintf("$%.2f", v)
}
