package wrike

import "strings"

// LookupMode names the operation a Find* call dispatched to.
type LookupMode string

const (
	ModeSingle   LookupMode = "single"
	ModeBatch    LookupMode = "batch"
	ModeChildren LookupMode = "children"
	ModeSpace    LookupMode = "space"
	ModeTask     LookupMode = "task"
	ModeFolder   LookupMode = "folder"
	ModeContact  LookupMode = "contact"
	ModeCategory LookupMode = "category"
	ModeAll      LookupMode = "all"
	ModeNone     LookupMode = ""
)

// present reports whether an optional ID input was supplied.
func present(id string) bool {
	return strings.TrimSpace(id) != ""
}

// optionalFieldsQuery starts a query carrying the fields parameter.
func optionalFieldsQuery(fields string) *Query {
	return NewQuery().Merge(ParseOptionalFields(fields))
}
