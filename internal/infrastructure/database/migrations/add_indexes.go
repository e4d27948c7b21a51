package migrations

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/PavaniTiago/lcp-network-api/internal/domain/survey"
)

// AddIndexes adds the uniqueness constraints the upserts rely on and the
// indexes used by the analytics queries
func AddIndexes(db *gorm.DB, registry *survey.Registry) error {
	// One response per user and year
	for _, s := range registry.Schemas() {
		stmts := []string{
			fmt.Sprintf("CREATE UNIQUE INDEX IF NOT EXISTS idx_%[1]s_user_year ON %[1]s (user_id, year)", s.Table),
			fmt.Sprintf("CREATE INDEX IF NOT EXISTS idx_%[1]s_completed_at ON %[1]s (completed_at)", s.Table),
			fmt.Sprintf("CREATE INDEX IF NOT EXISTS idx_%[1]s_created_at ON %[1]s (created_at)", s.Table),
		}
		for _, stmt := range stmts {
			if err := db.Exec(stmt).Error; err != nil {
				return err
			}
		}
	}

	// The projection keeps a single row per user
	if err := db.Exec("CREATE UNIQUE INDEX IF NOT EXISTS idx_member_surveys_user_id ON member_surveys (user_id)").Error; err != nil {
		return err
	}
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_member_surveys_survey_year ON member_surveys (survey_year)").Error; err != nil {
		return err
	}

	if err := db.Exec("CREATE UNIQUE INDEX IF NOT EXISTS idx_field_visibility_year_field ON field_visibility (survey_year, field_name)").Error; err != nil {
		return err
	}

	return nil
}
