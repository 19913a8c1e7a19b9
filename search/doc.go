// Package search builds Magento searchCriteria query strings: filter
// groups, sort orders, and pagination rendered as the flat bracketed
// parameters the REST API expects on GET list endpoints.
//
//	query := search.New().
//		Equal("status", "processing").
//		Like("name", "%shirt%").
//		SortBy("created_at", search.Descending).
//		Paginate(1, 50).
//		Encode()
//
// Filters added with Where/Equal/Like/In each form their own group and
// are ANDed together; WhereAny groups alternatives that are ORed. An
// empty Criteria still encodes a bare searchCriteria key, which the
// API requires for unfiltered listings.
package search
