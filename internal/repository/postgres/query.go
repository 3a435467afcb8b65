package postgres

import (
	"fmt"
	"strings"

	"rateanalysis/internal/repository"
)

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// orderBy renders an ORDER BY clause from client sort orders. Properties are JSON
// field names translated through columns; anything else is rejected so that no client
// input reaches the SQL text. id is always appended as a tie-breaker for stable pages.
func orderBy(sort []repository.Order, columns map[string]string) (string, error) {
	parts := make([]string, 0, len(sort)+1)
	seenID := false
	for _, o := range sort {
		col, ok := columns[o.Property]
		if !ok {
			return "", fmt.Errorf("%w: %q", repository.ErrInvalidSort, o.Property)
		}
		dir := "ASC"
		if o.Direction == repository.Desc {
			dir = "DESC"
		}
		if col == "id" {
			seenID = true
		}
		parts = append(parts, col+" "+dir)
	}
	if !seenID {
		parts = append(parts, "id ASC")
	}
	return "ORDER BY " + strings.Join(parts, ", "), nil
}
