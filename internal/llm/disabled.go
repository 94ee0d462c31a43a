package llm

import "context"

// DisabledProvider stands in when no provider could be configured.
// Every call fails with ErrProviderUnavailable so callers take their
// fallback path.
type DisabledProvider struct {
	Reason error
}

// NewDisabledProvider returns a Provider that always fails with reason.
func NewDisabledProvider(reason error) *DisabledProvider {
	return &DisabledProvider{Reason: reason}
}

func (d *DisabledProvider) Generate(_ context.Context, _ Request) (*Response, error) {
	return nil, &ErrProviderUnavailable{Err: d.Reason}
}

func (d *DisabledProvider) ModelID() string {
	return "disabled"
}
