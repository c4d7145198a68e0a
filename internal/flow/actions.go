package flow

// Callback action keys shared between the flow transitions that emit
// buttons and the telegram routes that receive them.
const (
	ActionStart   = "shop_start"
	ActionDecline = "shop_decline"
	ActionBucket  = "shop_bucket"
	ActionCode    = "shop_code"
	ActionPrev    = "shop_prev"
	ActionNext    = "shop_next"
	ActionNoop    = "noop"
)
