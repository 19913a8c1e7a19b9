package search

import (
	"fmt"
	"net/url"
	"strconv"
)

// Condition types understood by the searchCriteria API.
const (
	ConditionEqual       = "eq"
	ConditionNotEqual    = "neq"
	ConditionLike        = "like"
	ConditionIn          = "in"
	ConditionNotIn       = "nin"
	ConditionGreater     = "gt"
	ConditionGreaterEq   = "gteq"
	ConditionLess        = "lt"
	ConditionLessEq      = "lteq"
	ConditionFrom        = "from"
	ConditionTo          = "to"
	ConditionNull        = "null"
	ConditionNotNull     = "notnull"
	ConditionFinset      = "finset"
	ConditionMoreOrEqual = "moreq"
)

// Sort directions.
const (
	Ascending  = "ASC"
	Descending = "DESC"
)

type filter struct {
	field     string
	value     string
	condition string
}

type sortOrder struct {
	field     string
	direction string
}

// Criteria accumulates Magento search criteria: filter groups, sort
// orders, and pagination. Filters added to the same group are ORed by
// the API; separate groups are ANDed.
type Criteria struct {
	groups      [][]filter
	sorts       []sortOrder
	pageSize    int
	currentPage int
}

// New returns empty criteria. An empty Criteria encodes to
// searchCriteria without constraints, which the API requires even for
// unfiltered listings.
func New() *Criteria {
	return &Criteria{}
}

// Where adds a single-filter group: field <condition> value, ANDed with
// all other groups.
func (c *Criteria) Where(field, condition string, value any) *Criteria {
	c.groups = append(c.groups, []filter{{
		field:     field,
		value:     formatValue(value),
		condition: condition,
	}})
	return c
}

// WhereAny adds one group of alternatives: any of the filters matching
// admits the record.
func (c *Criteria) WhereAny(filters ...Filter) *Criteria {
	if len(filters) == 0 {
		return c
	}
	group := make([]filter, 0, len(filters))
	for _, f := range filters {
		group = append(group, filter{
			field:     f.Field,
			value:     formatValue(f.Value),
			condition: f.Condition,
		})
	}
	c.groups = append(c.groups, group)
	return c
}

// Filter is one field condition inside a WhereAny group.
type Filter struct {
	Field     string
	Condition string
	Value     any
}

// Equal is shorthand for Where(field, "eq", value).
func (c *Criteria) Equal(field string, value any) *Criteria {
	return c.Where(field, ConditionEqual, value)
}

// Like adds a LIKE filter. The caller supplies the % wildcards.
func (c *Criteria) Like(field, pattern string) *Criteria {
	return c.Where(field, ConditionLike, pattern)
}

// In adds an IN filter over the given values.
func (c *Criteria) In(field string, values ...any) *Criteria {
	joined := ""
	for i, v := range values {
		if i > 0 {
			joined += ","
		}
		joined += formatValue(v)
	}
	return c.Where(field, ConditionIn, joined)
}

// SortBy appends a sort order. Multiple calls sort by the first field
// first.
func (c *Criteria) SortBy(field, direction string) *Criteria {
	c.sorts = append(c.sorts, sortOrder{field: field, direction: direction})
	return c
}

// Paginate sets page size and the 1-based current page.
func (c *Criteria) Paginate(page, size int) *Criteria {
	c.currentPage = page
	c.pageSize = size
	return c
}

// PageSize sets only the page size.
func (c *Criteria) PageSize(size int) *Criteria {
	c.pageSize = size
	return c
}

// Encode renders the criteria as the flat bracketed query parameters
// the REST API expects, e.g.
// searchCriteria[filterGroups][0][filters][0][field]=status.
func (c *Criteria) Encode() url.Values {
	params := url.Values{}

	for g, group := range c.groups {
		for f, flt := range group {
			prefix := fmt.Sprintf("searchCriteria[filterGroups][%d][filters][%d]", g, f)
			params.Set(prefix+"[field]", flt.field)
			params.Set(prefix+"[value]", flt.value)
			params.Set(prefix+"[conditionType]", flt.condition)
		}
	}

	for i, s := range c.sorts {
		prefix := fmt.Sprintf("searchCriteria[sortOrders][%d]", i)
		params.Set(prefix+"[field]", s.field)
		params.Set(prefix+"[direction]", s.direction)
	}

	if c.pageSize > 0 {
		params.Set("searchCriteria[pageSize]", strconv.Itoa(c.pageSize))
	}
	if c.currentPage > 0 {
		params.Set("searchCriteria[currentPage]", strconv.Itoa(c.currentPage))
	}

	if len(params) == 0 {
		// The API rejects list calls without a searchCriteria key.
		params.Set("searchCriteria", "")
	}
	return params
}

func formatValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case fmt.Stringer:
		return val.String()
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case bool:
		if val {
			return "1"
		}
		return "0"
	default:
		return fmt.Sprintf("%v", val)
	}
}
