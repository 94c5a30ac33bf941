package metrics

// Attribute keys shared by every instrument.
const (
	AttrMethod   = "method"
	AttrPath     = "path"
	AttrStatus   = "status"
	AttrProvider = "provider"
	AttrOutcome  = "outcome"
)

const (
	outcomeOK    = "ok"
	outcomeError = "error"
)
