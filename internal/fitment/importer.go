package fitment

import (
	"errors"
	"fmt"
	"log"

	"github.com/fitgear/ymmgo/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ImportRow is one record of a bulk import. Two kinds share the shape:
// vehicle rows carry make/model/yearStart/yearEnd, association rows carry
// productId/make/model/year. A non-empty ProductID marks an association row.
type ImportRow struct {
	ProductID string `json:"product_id,omitempty"`
	Make      string `json:"make"`
	Model     string `json:"model"`
	YearStart int    `json:"year_start,omitempty"`
	YearEnd   int    `json:"year_end,omitempty"`
	Year      int    `json:"year,omitempty"`
}

// IsAssociation reports whether the row links a product rather than
// defining a range
func (r ImportRow) IsAssociation() bool { return r.ProductID != "" }

// Validate checks a row before it touches the store
func (r ImportRow) Validate() error {
	if r.Make == "" {
		return fmt.Errorf("make is required")
	}
	if r.Model == "" {
		return fmt.Errorf("model is required")
	}
	if r.IsAssociation() {
		if r.Year <= 0 {
			return fmt.Errorf("year is required")
		}
		return nil
	}
	if r.YearStart <= 0 || r.YearEnd <= 0 {
		return fmt.Errorf("year_start and year_end are required")
	}
	if r.YearStart > r.YearEnd {
		return fmt.Errorf("year_start %d is after year_end %d", r.YearStart, r.YearEnd)
	}
	return nil
}

// RowError records one failed row without aborting the batch
type RowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// ImportReport aggregates the outcome of a bulk import
type ImportReport struct {
	ID      string     `json:"id"`
	Total   int        `json:"total"`
	Created int        `json:"created"`
	Linked  int        `json:"linked"`
	Failed  int        `json:"failed"`
	Errors  []RowError `json:"errors"`
}

// BulkImport ingests vehicle and association rows. Rows are processed
// independently: a failing row is captured in the report and processing
// continues, so one malformed line can never sink the whole batch.
func (s *Service) BulkImport(scope string, rows []ImportRow) *ImportReport {
	report := &ImportReport{
		ID:     uuid.NewString(),
		Total:  len(rows),
		Errors: []RowError{},
	}

	for i, row := range rows {
		if err := row.Validate(); err != nil {
			report.Failed++
			report.Errors = append(report.Errors, RowError{Row: i + 1, Message: err.Error()})
			continue
		}

		var err error
		if row.IsAssociation() {
			err = s.importAssociationRow(scope, row)
			if err == nil {
				report.Linked++
			}
		} else {
			err = s.importVehicleRow(scope, row)
			if err == nil {
				report.Created++
			}
		}
		if err != nil {
			report.Failed++
			report.Errors = append(report.Errors, RowError{Row: i + 1, Message: err.Error()})
		}
	}

	log.Printf("📥 Import %s [%s]: %d rows, %d created, %d linked, %d failed",
		report.ID, scope, report.Total, report.Created, report.Linked, report.Failed)
	return report
}

func (s *Service) importVehicleRow(scope string, row ImportRow) error {
	rng := models.VehicleRange{
		Scope:     scope,
		Make:      row.Make,
		Model:     row.Model,
		YearStart: row.YearStart,
		YearEnd:   row.YearEnd,
		IsActive:  true,
	}
	if err := rng.Validate(); err != nil {
		return err
	}
	if err := s.db.Create(&rng).Error; err != nil {
		return fmt.Errorf("failed to create vehicle range: %w", err)
	}
	return nil
}

// importAssociationRow links a product to a range covering the row's year,
// creating a single-year range when none exists yet.
func (s *Service) importAssociationRow(scope string, row ImportRow) error {
	rng, err := s.resolveOrCreateRange(scope, row.Make, row.Model, row.Year)
	if err != nil {
		return err
	}

	link := models.ProductVehicleLink{
		ExternalProductID: row.ProductID,
		VehicleRangeID:    rng.ID,
	}
	if err := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&link).Error; err != nil {
		return fmt.Errorf("failed to link product %s: %w", row.ProductID, err)
	}
	return nil
}

func (s *Service) resolveOrCreateRange(scope, makeName, modelName string, year int) (*models.VehicleRange, error) {
	var rng models.VehicleRange
	err := s.db.
		Where("scope = ? AND is_active = ? AND make = ? AND model = ?", scope, true, makeName, modelName).
		Where("year_start <= ? AND year_end >= ?", year, year).
		First(&rng).Error
	if err == nil {
		return &rng, nil
	}
	// Only a genuine miss may fall through to the create branch; a
	// transient store error must surface as the row's failure, not
	// fabricate a new range.
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up vehicle range: %w", err)
	}

	rng = models.VehicleRange{
		Scope:     scope,
		Make:      makeName,
		Model:     modelName,
		YearStart: year,
		YearEnd:   year,
		IsActive:  true,
	}
	if err := s.db.Create(&rng).Error; err != nil {
		return nil, fmt.Errorf("failed to create vehicle range: %w", err)
	}
	return &rng, nil
}
