package fitment

import (
	"context"
	"fmt"

	"github.com/fitgear/ymmgo/internal/models"
	"github.com/fitgear/ymmgo/internal/services/catalog"
)

// SearchResult is the payload of a storefront compatibility search
type SearchResult struct {
	Products    []catalog.Product `json:"products"`
	Total       int               `json:"total"`
	VehicleInfo VehicleInfo       `json:"vehicle_info"`
}

// VehicleInfo echoes the resolved selection back to the widget
type VehicleInfo struct {
	Year          int    `json:"year"`
	Make          string `json:"make"`
	Model         string `json:"model"`
	MatchedRanges int    `json:"matched_ranges"`
}

// FindCompatibleRanges returns the active ranges matching an exact
// make/model with yearStart <= year <= yearEnd. No matches is an empty
// slice, not an error.
func (s *Service) FindCompatibleRanges(scope string, year int, makeName, modelName string) ([]models.VehicleRange, error) {
	if year <= 0 || makeName == "" || modelName == "" {
		return []models.VehicleRange{}, nil
	}

	var ranges []models.VehicleRange
	err := s.db.
		Where("scope = ? AND is_active = ? AND make = ? AND model = ?", scope, true, makeName, modelName).
		Where("year_start <= ? AND year_end >= ?", year, year).
		Find(&ranges).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query vehicle ranges: %w", err)
	}
	return ranges, nil
}

// ResolveProductsForVehicle maps a YMM selection to the external product ids
// linked through any matching range. A product linked via several
// overlapping ranges appears once; beyond deduplication the order carries
// no contract.
func (s *Service) ResolveProductsForVehicle(scope string, year int, makeName, modelName string) ([]string, error) {
	ranges, err := s.FindCompatibleRanges(scope, year, makeName, modelName)
	if err != nil {
		return nil, err
	}
	if len(ranges) == 0 {
		return []string{}, nil
	}

	rangeIDs := make([]uint, len(ranges))
	for i, r := range ranges {
		rangeIDs[i] = r.ID
	}

	var links []models.ProductVehicleLink
	if err := s.db.Where("vehicle_range_id IN ?", rangeIDs).Find(&links).Error; err != nil {
		return nil, fmt.Errorf("failed to query product links: %w", err)
	}

	ids := make([]string, len(links))
	for i, l := range links {
		ids[i] = l.ExternalProductID
	}
	return dedupeProductIDs(ids), nil
}

// SearchProducts resolves a YMM selection and enriches the product ids via
// the catalog gateway. A failing gateway batch fails the whole search.
func (s *Service) SearchProducts(ctx context.Context, scope string, year int, makeName, modelName string) (*SearchResult, error) {
	ranges, err := s.FindCompatibleRanges(scope, year, makeName, modelName)
	if err != nil {
		return nil, err
	}

	result := &SearchResult{
		Products: []catalog.Product{},
		VehicleInfo: VehicleInfo{
			Year:          year,
			Make:          makeName,
			Model:         modelName,
			MatchedRanges: len(ranges),
		},
	}
	if len(ranges) == 0 {
		return result, nil
	}

	rangeIDs := make([]uint, len(ranges))
	for i, r := range ranges {
		rangeIDs[i] = r.ID
	}

	var links []models.ProductVehicleLink
	if err := s.db.Where("vehicle_range_id IN ?", rangeIDs).Find(&links).Error; err != nil {
		return nil, fmt.Errorf("failed to query product links: %w", err)
	}

	ids := make([]string, len(links))
	for i, l := range links {
		ids[i] = l.ExternalProductID
	}
	ids = dedupeProductIDs(ids)
	if len(ids) == 0 {
		return result, nil
	}

	products, err := s.gateway.FetchProducts(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("product detail fetch failed: %w", err)
	}

	result.Products = products
	result.Total = len(products)
	return result, nil
}

// dedupeProductIDs removes duplicates keeping first-seen order
func dedupeProductIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
