package billing

import "errors"

var (
	ErrRateNotPositive  = errors.New("the tenant must have a positive monthly rate before obligations can be generated")
	ErrRangeInverted    = errors.New("the end month must not be before the start month")
	ErrMonthsAheadRange = errors.New("monthsAhead must be between 1 and 24")
	ErrWeightsInvalid   = errors.New("the spending category weights cannot allocate this budget")
	ErrReconciliation   = errors.New("allocated amounts do not sum up to the budget")
)
