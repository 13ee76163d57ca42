package fiscalqr

// ParsedField is one decoded field of the payload. Valid only ever moves
// from true to false and Errors is append-only, so an entry never loses a
// recorded problem.
type ParsedField struct {
	ID     FieldID  `json:"id"`
	Value  string   `json:"value"`
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitempty"`
}

func (f *ParsedField) invalidate(keys ...string) {
	f.Valid = false
	f.Errors = append(f.Errors, keys...)
}

// Result is the outcome of decoding one payload. Fields holds an entry
// for every field that appeared in the payload plus a synthesized invalid
// entry for every mandatory field that did not. PayloadErrors records
// payload-level anomalies that are not attributable to a single field.
type Result struct {
	Fields        map[FieldID]*ParsedField `json:"fields"`
	PayloadErrors []string                 `json:"payloadErrors,omitempty"`
}

// Valid reports whether the payload passed every check: no payload-level
// anomaly and every field entry valid.
func (r *Result) Valid() bool {
	if len(r.PayloadErrors) > 0 {
		return false
	}
	for _, f := range r.Fields {
		if !f.Valid {
			return false
		}
	}
	return true
}

// Value returns the raw value of id, or "" when the field is absent.
// Business rules read their dependencies through this accessor, so an
// absent field and a blank field are indistinguishable to them.
func (r *Result) Value(id FieldID) string {
	if f, ok := r.Fields[id]; ok {
		return f.Value
	}
	return ""
}

// Field returns the parsed entry for id, or nil when absent.
func (r *Result) Field(id FieldID) *ParsedField {
	return r.Fields[id]
}
