package pricing

import "errors"

// ErrInvalidFeeConfig is returned by NewEngine when the fee
// configuration makes the forward formula undefined (processor
// percentage at or above 100%) or otherwise nonsensical. It indicates
// a deployment bug, never a runtime data condition, and must block
// startup rather than let the service serve approximate prices.
var ErrInvalidFeeConfig = errors.New("invalid fee configuration")
