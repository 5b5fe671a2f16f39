package schema

import (
	"fmt"
	"strings"
)

// ColumnNotFoundError reports that a required logical field matched no
// header. It carries the available headers so the boundary can present
// them to the user and re-invoke resolution with an explicit override.
type ColumnNotFoundError struct {
	Field   Field
	Headers []string
}

func (e *ColumnNotFoundError) Error() string {
	return fmt.Sprintf("no column found for %s (available headers: %s)",
		e.Field, strings.Join(e.Headers, ", "))
}

// DuplicateFieldMatchError reports that two or more headers matched the
// same logical field. Silently picking one is undefined behavior, so this
// is fatal for the table.
type DuplicateFieldMatchError struct {
	Field   Field
	Headers []string
}

func (e *DuplicateFieldMatchError) Error() string {
	return fmt.Sprintf("multiple columns match %s: %s",
		e.Field, strings.Join(e.Headers, ", "))
}
