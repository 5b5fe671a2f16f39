package schema

// Field is one of the logical columns the engine requires from every
// source table.
type Field string

const (
	FieldEmployeeID   Field = "employee_id"
	FieldEmployeeName Field = "employee_name"
	FieldDate         Field = "date"
	FieldValue        Field = "value"
)

// Fields lists the logical fields in resolution order.
var Fields = []Field{FieldEmployeeID, FieldEmployeeName, FieldDate, FieldValue}

// DefaultSynonyms is the built-in header synonym configuration. Header
// matching is case-insensitive and whitespace-normalized, so entries here
// only need to differ in spelling, not in casing or spacing.
var DefaultSynonyms = map[Field][]string{
	FieldEmployeeID: {
		"Emp ID", "EmpID", "Employee ID", "Employee Code", "Emp Code", "Emp. Code", "Staff ID",
	},
	FieldEmployeeName: {
		"Emp Name", "Employee Name", "Name", "Staff Name",
	},
	FieldDate: {
		"Date", "Attendance Date", "Attn Date", "Day",
	},
	FieldValue: {
		"Status", "Attendance", "Attendance Status", "Value",
	},
}

// DefaultDateLayouts are the date forms accepted for cell values and for
// wide-layout column headers. Numeric layouts are day-first, matching the
// backend export convention; the resolver never tries both day-first and
// month-first readings of the same value.
var DefaultDateLayouts = []string{
	"2006-01-02",
	"02-01-2006",
	"02-Jan-06",
	"02-Jan-2006",
	"2-Jan-06",
	"2-Jan-2006",
}

// Config drives column resolution for one source table.
type Config struct {
	// Synonyms maps each logical field to its recognized header spellings.
	// Nil falls back to DefaultSynonyms.
	Synonyms map[Field][]string

	// Overrides maps a logical field directly to a header label, bypassing
	// synonym matching. This is the re-invocation path after a
	// ColumnNotFoundError: the boundary supplies an explicit mapping and
	// calls Resolve again.
	Overrides map[Field]string

	// DateLayouts are the accepted date layouts, tried in order.
	// Nil falls back to DefaultDateLayouts.
	DateLayouts []string
}

func (c Config) synonyms() map[Field][]string {
	if c.Synonyms != nil {
		return c.Synonyms
	}
	return DefaultSynonyms
}

func (c Config) dateLayouts() []string {
	if len(c.DateLayouts) > 0 {
		return c.DateLayouts
	}
	return DefaultDateLayouts
}
