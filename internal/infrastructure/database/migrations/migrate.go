package migrations

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/PavaniTiago/lcp-network-api/internal/domain/survey"
)

// Migrate creates every table the API reads or writes, then its indexes.
// The statements are idempotent and safe to run on each start.
func Migrate(db *gorm.DB, registry *survey.Registry) error {
	d, err := dialectOf(db)
	if err != nil {
		return err
	}
	if err := CreateTables(db, d, registry); err != nil {
		return fmt.Errorf("create tables: %w", err)
	}
	if err := AddIndexes(db, registry); err != nil {
		return fmt.Errorf("add indexes: %w", err)
	}
	return nil
}
