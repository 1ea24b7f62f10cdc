// Package users implements the user-record service: the record model, the
// DynamoDB-backed repository, and the per-request operation handlers.
package users

// Record is a user item as stored in the record table. Items are schemaless
// beyond the email key; the service only interprets the fields it touches and
// passes everything else through unchanged.
type Record map[string]any

// Attribute names the service reads or writes.
const (
	FieldEmail           = "email"
	FieldIsDionysusAdmin = "isDionysusAdmin"
	FieldPageIndex       = "page_index"
	FieldOnBoarding      = "onBoarding"
	FieldGoals           = "goals"
	FieldTrackerFlag     = "hormonaltracker_flag"
	FieldTracker         = "hormonal_tracker"
	FieldJournal         = "journal_text"
)

// Bool reads a boolean attribute, returning false when absent or not a bool.
func (r Record) Bool(field string) bool {
	v, _ := r[field].(bool)
	return v
}

// StringList reads a list-of-strings attribute. DynamoDB unmarshals lists
// into []any, so both representations are accepted. The second return value
// reports whether the attribute was present and list-shaped.
func (r Record) StringList(field string) ([]string, bool) {
	switch v := r[field].(type) {
	case []string:
		return v, true
	case []any:
		list := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			list = append(list, s)
		}
		return list, true
	default:
		return nil, false
	}
}
