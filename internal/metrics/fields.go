package metrics

// Common metric attribute keys to keep telemetry consistent/searchable.
const (
	AttrMethod   = "method"
	AttrPath     = "path"
	AttrStatus   = "status"
	AttrProvider = "provider"
	AttrMode     = "mode"
	AttrOutcome  = "outcome"
	AttrSelector = "selector"
)
