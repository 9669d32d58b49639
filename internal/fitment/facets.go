package fitment

import (
	"fmt"

	"github.com/fitgear/ymmgo/internal/models"
)

// AvailableYears returns the full contiguous span between the lowest
// yearStart and the highest yearEnd across active ranges in a scope,
// descending. The span is intentionally not restricted to years literally
// covered by some range; storefronts relied on that behavior long before
// this rewrite. An empty catalog yields an empty slice.
func (s *Service) AvailableYears(scope string) ([]int, error) {
	var bounds struct {
		MinYear *int
		MaxYear *int
	}
	err := s.db.Model(&models.VehicleRange{}).
		Select("MIN(year_start) AS min_year, MAX(year_end) AS max_year").
		Where("scope = ? AND is_active = ?", scope, true).
		Scan(&bounds).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query year bounds: %w", err)
	}
	if bounds.MinYear == nil || bounds.MaxYear == nil {
		return []int{}, nil
	}
	return yearSpan(*bounds.MinYear, *bounds.MaxYear), nil
}

// AvailableMakes returns the distinct makes among active ranges covering
// the given year, ascending. A missing year degrades to an empty slice.
func (s *Service) AvailableMakes(scope string, year int) ([]string, error) {
	if year <= 0 {
		return []string{}, nil
	}

	makes := []string{}
	err := s.db.Model(&models.VehicleRange{}).
		Distinct("make").
		Where("scope = ? AND is_active = ?", scope, true).
		Where("year_start <= ? AND year_end >= ?", year, year).
		Order("make ASC").
		Pluck("make", &makes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query makes: %w", err)
	}
	return makes, nil
}

// AvailableModels returns the distinct models for a make among active
// ranges covering the given year, ascending. Missing parameters degrade to
// an empty slice.
func (s *Service) AvailableModels(scope string, year int, makeName string) ([]string, error) {
	if year <= 0 || makeName == "" {
		return []string{}, nil
	}

	modelNames := []string{}
	err := s.db.Model(&models.VehicleRange{}).
		Distinct("model").
		Where("scope = ? AND is_active = ? AND make = ?", scope, true, makeName).
		Where("year_start <= ? AND year_end >= ?", year, year).
		Order("model ASC").
		Pluck("model", &modelNames).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query models: %w", err)
	}
	return modelNames, nil
}

// yearSpan expands [min, max] into every year inclusive, newest first
func yearSpan(min, max int) []int {
	if min > max {
		return []int{}
	}
	years := make([]int, 0, max-min+1)
	for y := max; y >= min; y-- {
		years = append(years, y)
	}
	return years
}
