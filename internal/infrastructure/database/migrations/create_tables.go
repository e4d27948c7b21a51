package migrations

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/PavaniTiago/lcp-network-api/internal/domain/entities"
	"github.com/PavaniTiago/lcp-network-api/internal/domain/survey"
)

// dialect holds the column types that differ between Postgres and sqlite.
type dialect struct {
	name      string
	id        string
	serial    string
	timestamp string
	numeric   string
	boolean   string
	falseLit  string
	trueLit   string
}

var dialects = map[string]dialect{
	"postgres": {
		name:      "postgres",
		id:        "UUID",
		serial:    "BIGSERIAL PRIMARY KEY",
		timestamp: "TIMESTAMPTZ",
		numeric:   "NUMERIC",
		boolean:   "BOOLEAN",
		falseLit:  "FALSE",
		trueLit:   "TRUE",
	},
	"sqlite": {
		name:      "sqlite",
		id:        "TEXT",
		serial:    "INTEGER PRIMARY KEY AUTOINCREMENT",
		timestamp: "DATETIME",
		numeric:   "NUMERIC",
		boolean:   "BOOLEAN",
		falseLit:  "0",
		trueLit:   "1",
	},
}

func dialectOf(db *gorm.DB) (dialect, error) {
	d, ok := dialects[db.Dialector.Name()]
	if !ok {
		return dialect{}, fmt.Errorf("unsupported database dialect %q", db.Dialector.Name())
	}
	return d, nil
}

// columnType maps a field kind to its storage column. Composite kinds are
// stored as JSON text and the date sentinel as the literal "present".
func (d dialect) columnType(k entities.Kind) string {
	switch k {
	case entities.KindNumber:
		return d.numeric
	case entities.KindFlag:
		return d.boolean
	default:
		return "TEXT"
	}
}

// CreateTables creates one response table per survey year plus the
// member_surveys projection and the field_visibility rules.
func CreateTables(db *gorm.DB, d dialect, registry *survey.Registry) error {
	for _, s := range registry.Schemas() {
		if err := db.Exec(surveyTableDDL(d, s)).Error; err != nil {
			return fmt.Errorf("%s: %w", s.Table, err)
		}
	}
	if err := db.Exec(memberSurveysDDL(d)).Error; err != nil {
		return fmt.Errorf("member_surveys: %w", err)
	}
	if err := db.Exec(fieldVisibilityDDL(d)).Error; err != nil {
		return fmt.Errorf("field_visibility: %w", err)
	}
	return nil
}

func surveyTableDDL(d dialect, s *survey.Schema) string {
	var b strings.Builder
	fmt.Fprintf(&b, "CREATE TABLE IF NOT EXISTS %s (\n", s.Table)
	fmt.Fprintf(&b, "\tid %s PRIMARY KEY,\n", d.id)
	fmt.Fprintf(&b, "\tuser_id %s NOT NULL,\n", d.id)
	b.WriteString("\tyear INTEGER NOT NULL,\n")
	for _, f := range s.Fields {
		fmt.Fprintf(&b, "\t%s %s,\n", f.Name, d.columnType(f.Kind))
	}
	fmt.Fprintf(&b, "\tcompleted_at %s,\n", d.timestamp)
	fmt.Fprintf(&b, "\tcreated_at %s NOT NULL,\n", d.timestamp)
	fmt.Fprintf(&b, "\tupdated_at %s NOT NULL\n", d.timestamp)
	b.WriteString(")")
	return b.String()
}

func memberSurveysDDL(d dialect) string {
	return fmt.Sprintf(`CREATE TABLE IF NOT EXISTS member_surveys (
	id %[1]s PRIMARY KEY,
	user_id %[1]s NOT NULL,
	survey_year INTEGER NOT NULL,
	fund_name TEXT NOT NULL,
	website TEXT,
	fund_type TEXT,
	primary_investment_region TEXT,
	year_founded INTEGER,
	team_size INTEGER,
	typical_check_size TEXT,
	aum TEXT,
	investment_thesis TEXT,
	sector_focus TEXT,
	stage_focus TEXT,
	completed_at %[2]s,
	updated_at %[2]s NOT NULL
)`, d.id, d.timestamp)
}

func fieldVisibilityDDL(d dialect) string {
	return fmt.Sprintf(`CREATE TABLE IF NOT EXISTS field_visibility (
	id %[1]s,
	survey_year INTEGER NOT NULL,
	field_name TEXT NOT NULL,
	field_category TEXT,
	viewer_visible %[2]s NOT NULL DEFAULT %[3]s,
	member_visible %[2]s NOT NULL DEFAULT %[4]s,
	admin_visible %[2]s NOT NULL DEFAULT %[4]s
)`, d.serial, d.boolean, d.falseLit, d.trueLit)
}
