package survey

import "github.com/PavaniTiago/lcp-network-api/internal/domain/entities"

// Field names shared by every edition and referenced outside this package.
const (
	FieldVehicleName        = "vehicle_name"
	FieldVehicleWebsites    = "vehicle_websites"
	FieldVehicleType        = "vehicle_type"
	FieldThesis             = "thesis"
	FieldTeamMembers        = "team_members"
	FieldTeamSizeMin        = "team_size_min"
	FieldTeamSizeMax        = "team_size_max"
	FieldLegalDomicile      = "legal_domicile"
	FieldMarketsOperated    = "markets_operated"
	FieldTicketSizeMin      = "ticket_size_min"
	FieldTicketSizeMax      = "ticket_size_max"
	FieldTargetCapital      = "target_capital"
	FieldCapitalRaised      = "capital_raised"
	FieldFundStage          = "fund_stage"
	FieldLegalEntityFrom    = "legal_entity_date_from"
	FieldLegalEntityTo      = "legal_entity_date_to"
	FieldFirstCloseTo       = "first_close_date_to"
	FieldSectorsAllocation  = "sectors_allocation"
	FieldInstrumentPriority = "investment_instruments_priority"
	FieldTargetReturnMin    = "target_return_min"
	FieldTargetReturnMax    = "target_return_max"
)

const (
	percentRule = "gte=0,lte=100"
	yearRule    = "gte=1900,lte=2030"
	monthRule   = "gte=1,lte=12"
)

var exactHundred = &SumRule{Min: 99.9, Max: 100.1, Message: "percentages must sum to 100%"}

func text(name string, section int) Field {
	return Field{Name: name, Kind: entities.KindText, Section: section}
}

func number(name string, section int, rules string) Field {
	return Field{Name: name, Kind: entities.KindNumber, Section: section, Rules: rules}
}

func set(name string, section int) Field {
	return Field{Name: name, Kind: entities.KindSet, Section: section}
}

func allocation(name string, section int) Field {
	return Field{Name: name, Kind: entities.KindAllocation, Section: section, Rules: percentRule}
}

func required(f Field) Field {
	f.Required = true
	switch f.Kind {
	case entities.KindSet:
		f.Rules = join("required,min=1", f.Rules)
	default:
		f.Rules = join("required", f.Rules)
	}
	return f
}

func withRules(f Field, rules string) Field {
	f.Rules = join(f.Rules, rules)
	return f
}

func withSum(f Field, rule *SumRule) Field {
	f.Sum = rule
	return f
}

func join(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	}
	return a + "," + b
}

// baseFields is the network profile questionnaire present in every edition.
func baseFields() []Field {
	return []Field{
		// 1. Vehicle information
		required(text(FieldVehicleName, 1)),
		set(FieldVehicleWebsites, 1),
		text(FieldVehicleType, 1),
		text("vehicle_type_other", 1),
		text(FieldThesis, 1),

		// 2. Team & leadership
		{Name: FieldTeamMembers, Kind: entities.KindTeam, Section: 2},
		number(FieldTeamSizeMin, 2, "gte=1"),
		number(FieldTeamSizeMax, 2, "gte=1"),
		text("team_description", 2),

		// 3. Geographic & market focus
		set(FieldLegalDomicile, 3),
		text("legal_domicile_other", 3),
		allocation(FieldMarketsOperated, 3),
		text("markets_operated_other", 3),

		// 4. Investment strategy
		number(FieldTicketSizeMin, 4, "gte=0"),
		number(FieldTicketSizeMax, 4, "gte=0"),
		text("ticket_description", 4),
		number(FieldTargetCapital, 4, "gte=0"),
		number(FieldCapitalRaised, 4, "gte=0"),
		number("capital_in_market", 4, "gte=0"),

		// 5. Fund operations
		withRules(text("supporting_document_url", 5), "url"),
		text("expectations", 5),
		text("how_heard_about_network", 5),
		text("how_heard_about_network_other", 5),

		// 6. Fund status & timeline
		set(FieldFundStage, 6),
		text("current_status", 6),
		text("current_status_other", 6),
		number(FieldLegalEntityFrom, 6, yearRule),
		{Name: FieldLegalEntityTo, Kind: entities.KindYear, Section: 6, Rules: yearRule},
		number("legal_entity_month_from", 6, monthRule),
		number("legal_entity_month_to", 6, monthRule),
		number("first_close_date_from", 6, yearRule),
		{Name: FieldFirstCloseTo, Kind: entities.KindYear, Section: 6, Rules: yearRule},
		number("first_close_month_from", 6, monthRule),
		number("first_close_month_to", 6, monthRule),

		// 7. Investment instruments
		allocation(FieldInstrumentPriority, 7),

		// 8. Sector focus & returns
		allocation(FieldSectorsAllocation, 8),
		number(FieldTargetReturnMin, 8, ""),
		number(FieldTargetReturnMax, 8, ""),
		number("equity_investments_made", 8, "gte=0"),
		number("equity_investments_exited", 8, "gte=0"),
		number("self_liquidating_made", 8, "gte=0"),
		number("self_liquidating_exited", 8, "gte=0"),
	}
}

var baseRanges = []Range{
	{Min: FieldTeamSizeMin, Max: FieldTeamSizeMax},
	{Min: FieldTicketSizeMin, Max: FieldTicketSizeMax},
	{Min: FieldTargetReturnMin, Max: FieldTargetReturnMax},
}

var baseCapped = []string{FieldMarketsOperated}

func edition(year int, extra ...Field) *Schema {
	fields := append(baseFields(), extra...)
	return NewSchema(year, fields, baseRanges, baseCapped)
}

// Survey2021 is the first edition of the network survey.
func Survey2021() *Schema {
	return edition(2021,
		required(withRules(text("email_address", 9), "email")),
		required(text("firm_name", 9)),
		required(text("participant_name", 9)),
		required(text("role_title", 9)),
		required(set("team_based", 9)),
		set("geographic_focus", 9),
		set("investment_vehicle_type", 9),
		set("target_sectors", 9),
		Field{Name: "report_sustainable_development_goals", Kind: entities.KindFlag, Section: 9},
	)
}

func Survey2022() *Schema {
	return edition(2022,
		required(withRules(text("email", 9), "email")),
		required(text("organisation", 9)),
		required(set("geographic_markets", 9)),
		required(set("team_based", 9)),
		set("concessionary_capital", 9),
		set("gender_orientation", 9),
		set("enterprise_types", 9),
	)
}

// Survey2023 is the MSME financing edition; its thesis allocations must add up.
func Survey2023() *Schema {
	return edition(2023,
		required(withRules(text("email_address", 9), "email")),
		required(text("organisation_name", 9)),
		required(set("geographic_markets", 9)),
		withSum(allocation("business_stages", 9), exactHundred),
		withSum(allocation("financing_needs", 9), exactHundred),
		withSum(allocation("sector_focus", 9), &SumRule{Min: 95, Max: 100, Message: "percentages should sum to 95-100%"}),
		number("hurdle_rate_percentage", 9, "gte=0,lte=100"),
		set("sustainable_development_goals", 9),
	)
}

func Survey2024() *Schema {
	return edition(2024,
		required(withRules(text("email_address", 9), "email")),
		required(text("organisation_name", 9)),
		required(set("investment_networks", 9)),
		required(set("geographic_markets", 9)),
		withSum(allocation("business_stages", 9), exactHundred),
		number("hurdle_rate_percentage", 9, "gte=0,lte=100"),
		set("top_sdgs", 9),
		Field{Name: "receive_results", Kind: entities.KindFlag, Section: 9},
	)
}

// DefaultRegistry registers every edition of the survey.
func DefaultRegistry() *Registry {
	return NewRegistry(Survey2021(), Survey2022(), Survey2023(), Survey2024())
}
