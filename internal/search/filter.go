package search

import (
	"encoding/json"
	"fmt"
	"strings"

	"findabode-backend/internal/models"

	"github.com/meilisearch/meilisearch-go"
)

type FilterParams struct {
	Query        string
	City         string
	PropertyType string
	ListingType  string
	MinPrice     *float64
	MaxPrice     *float64
	Bedrooms     *int
	Limit        int64
}

// FilterSearch performs a filtered free-text search over eligible properties
func (s *SearchClient) FilterSearch(params FilterParams) ([]models.Property, error) {
	// Only publicly visible listings are searchable
	filters := []string{
		"approval_status = 'approved'",
		"is_active = true",
		"is_sold = false",
	}

	if params.City != "" {
		filters = append(filters, fmt.Sprintf("city = '%s'", params.City))
	}
	if params.PropertyType != "" {
		filters = append(filters, fmt.Sprintf("property_type = '%s'", params.PropertyType))
	}
	if params.ListingType != "" {
		filters = append(filters, fmt.Sprintf("listing_type = '%s'", params.ListingType))
	}
	if params.MinPrice != nil {
		filters = append(filters, fmt.Sprintf("price >= %g", *params.MinPrice))
	}
	if params.MaxPrice != nil {
		filters = append(filters, fmt.Sprintf("price <= %g", *params.MaxPrice))
	}
	if params.Bedrooms != nil {
		filters = append(filters, fmt.Sprintf("bedrooms = %d", *params.Bedrooms))
	}

	if params.Limit == 0 {
		params.Limit = 20
	}

	searchReq := &meilisearch.SearchRequest{
		Limit:  params.Limit,
		Filter: strings.Join(filters, " AND "),
	}

	searchRes, err := s.client.Index(s.index).Search(params.Query, searchReq)
	if err != nil {
		return nil, err
	}

	// Convert hits to properties via JSON round trip
	var properties []models.Property
	for _, hit := range searchRes.Hits {
		hitJSON, err := json.Marshal(hit)
		if err != nil {
			continue
		}

		var property models.Property
		if err := json.Unmarshal(hitJSON, &property); err != nil {
			continue
		}

		properties = append(properties, property)
	}

	return properties, nil
}
