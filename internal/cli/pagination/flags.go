package pagination

import (
	"errors"
	"fmt"
	"strings"
)

// Limit and sort defaults and validation bounds.
const (
	DefaultLimit = 0 // 0 means no limit
	MaxLimit     = 100000

	SortOrderAsc  = "asc"
	SortOrderDesc = "desc"

	sortPartsMax = 2
)

// Common validation errors.
var (
	ErrInvalidLimit     = errors.New("limit must be between 0 and 100000")
	ErrInvalidSortOrder = errors.New("sort order must be 'asc' or 'desc'")
)

// Params holds the limit and sort flags of a list-printing command.
type Params struct {
	// Limit caps the number of printed rows. 0 prints everything.
	Limit int

	// SortField is the record field to sort by. Empty keeps server order.
	SortField string

	// SortOrder is "asc" or "desc".
	SortOrder string
}

// NewParams returns Params with defaults applied.
func NewParams() *Params {
	return &Params{
		Limit:     DefaultLimit,
		SortOrder: SortOrderAsc,
	}
}

// Validate checks flag consistency.
func (p Params) Validate() error {
	if p.Limit < 0 || p.Limit > MaxLimit {
		return fmt.Errorf("%w: got %d", ErrInvalidLimit, p.Limit)
	}
	if p.SortOrder != SortOrderAsc && p.SortOrder != SortOrderDesc {
		return fmt.Errorf("%w: got %q", ErrInvalidSortOrder, p.SortOrder)
	}
	return nil
}

// ParseSortExpression parses a sort expression in "field:order" format.
// Supports:
//   - "field" - defaults to asc order
//   - "field:asc" - explicit ascending order
//   - "field:desc" - explicit descending order
func ParseSortExpression(expr string) (string, string, error) {
	if strings.TrimSpace(expr) == "" {
		return "", "", errors.New("empty sort expression")
	}

	parts := strings.Split(expr, ":")
	if len(parts) > sortPartsMax {
		return "", "", fmt.Errorf("invalid format: too many colons in %q", expr)
	}

	field := strings.TrimSpace(parts[0])
	if field == "" {
		return "", "", errors.New("empty sort expression")
	}

	order := SortOrderAsc
	if len(parts) == sortPartsMax {
		order = strings.ToLower(strings.TrimSpace(parts[1]))
	}

	if order != SortOrderAsc && order != SortOrderDesc {
		return "", "", fmt.Errorf("invalid sort order: %q (must be asc or desc)", order)
	}

	return field, order, nil
}
