package parser

// Field positions within a LogRow.
const (
	FieldResource  = 0
	FieldTimestamp = 1
	FieldUserAgent = 2
)

// MinFields is the number of fields a well-formed row carries.
const MinFields = 3

// LogRow is one CSV record from the access log, fields in file order.
type LogRow []string

// Field returns field i, or false when the row is too short to have it.
func (r LogRow) Field(i int) (string, bool) {
	if i < 0 || i >= len(r) {
		return "", false
	}
	return r[i], true
}

// Resource is the requested path or URL.
func (r LogRow) Resource() (string, bool) { return r.Field(FieldResource) }

// Timestamp is the raw "YYYY-MM-DD HH:MM:SS" string.
func (r LogRow) Timestamp() (string, bool) { return r.Field(FieldTimestamp) }

// UserAgent is the raw user-agent header value.
func (r LogRow) UserAgent() (string, bool) { return r.Field(FieldUserAgent) }

// Malformed reports whether the row has fewer than MinFields fields.
func (r LogRow) Malformed() bool { return len(r) < MinFields }

// Dataset is every row of one log file in file order. It is not modified
// after Parse returns.
type Dataset []LogRow

// Len returns the number of rows.
func (d Dataset) Len() int { return len(d) }
