package models

// FilterableFields are the fields a query may constrain, by request parameter name.
var FilterableFields = []Field{FieldClientIP, FieldStatusCode, FieldURL}

// FieldFilter holds substring constraints per field. A line matches when every
// constraint's value is a substring of the corresponding field; an empty filter
// matches everything.
type FieldFilter map[Field]string

// NewFieldFilter builds a filter from request parameters, keeping only filterable
// fields with non-empty values.
func NewFieldFilter(params map[string]string) FieldFilter {
	filter := FieldFilter{}
	for _, f := range FilterableFields {
		if v := params[string(f)]; v != "" {
			filter[f] = v
		}
	}
	return filter
}
