package shop

import "errors"

// Lookup failures on the static config tables. These are fatal to the call
// that hit them and must propagate; they are never substituted with a
// default list. Running out of currency, fluid, or capacity is not an
// error anywhere in this package — it just yields a smaller plan.
var (
	ErrUnknownDay      = errors.New("unknown day")
	ErrUnknownStrategy = errors.New("unknown strategy")
)
