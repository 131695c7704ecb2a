package business_directory

import (
	"net/url"
	"strings"

	"github.com/m04kA/BookEasy/internal/domain"
)

// SearchCriteriaFromQuery q, location, category, sort, price из query параметров
func SearchCriteriaFromQuery(query url.Values) domain.SearchCriteria {
	return domain.SearchCriteria{
		Query:      query.Get("q"),
		Location:   query.Get("location"),
		Category:   strings.ToLower(query.Get("category")),
		SortBy:     domain.SortBy(query.Get("sort")),
		PriceRange: domain.PriceRange(query.Get("price")),
	}
}
