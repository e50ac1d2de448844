package db

import "errors"

// Sentinel errors for database operations.
var (
	ErrKeyNotFound    = errors.New("db: key not found")
	ErrUnknownField   = errors.New("db: unknown field")
	ErrBadIdentifier  = errors.New("db: invalid identifier")
	ErrUnknownDialect = errors.New("db: unknown dialect")
)

// Op names used for error context and query metrics.
const (
	OpSearchProducts = "search_products"
	OpGetProduct     = "get_product"
	OpListMakes      = "list_makes"
	OpListModels     = "list_models"
	OpListCategories = "list_categories"
	OpYearRange      = "year_range"
	OpSuggestions    = "suggestions"
	OpPing           = "PING"
	OpGet            = "GET"
	OpSet            = "SET"
)

// Error wraps an underlying error with the operation name for diagnostics.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }
