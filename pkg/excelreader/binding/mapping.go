package binding

// ColumnMapping overrides which field a header binds to. Header keys are
// case-insensitive. A nil *ColumnMapping is an empty mapping.
type ColumnMapping struct {
	fields  map[string]string // folded header -> field name
	headers []string
}

// NewColumnMapping returns an empty mapping.
func NewColumnMapping() *ColumnMapping {
	return &ColumnMapping{fields: make(map[string]string)}
}

// MappingFromMap builds a mapping from header -> field pairs.
func MappingFromMap(m map[string]string) *ColumnMapping {
	cm := NewColumnMapping()
	for header, field := range m {
		cm.Add(header, field)
	}
	return cm
}

// Add maps the header text to the named field, replacing any previous
// entry for the same header.
func (m *ColumnMapping) Add(header, field string) *ColumnMapping {
	if m.fields == nil {
		m.fields = make(map[string]string)
	}
	key := normalize(header)
	if _, ok := m.fields[key]; !ok {
		m.headers = append(m.headers, header)
	}
	m.fields[key] = field
	return m
}

// Lookup returns the field name mapped to header.
func (m *ColumnMapping) Lookup(header string) (string, bool) {
	if m == nil {
		return "", false
	}
	field, ok := m.fields[normalize(header)]
	return field, ok
}

// Len returns the number of entries.
func (m *ColumnMapping) Len() int {
	if m == nil {
		return 0
	}
	return len(m.fields)
}

// Map returns a copy of the entries keyed by header as first added.
func (m *ColumnMapping) Map() map[string]string {
	out := make(map[string]string, m.Len())
	if m == nil {
		return out
	}
	for _, header := range m.headers {
		out[header] = m.fields[normalize(header)]
	}
	return out
}
