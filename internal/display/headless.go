package display

import "context"

// Headless is a Display without a window. It blocks until ctx is done.
type Headless struct {
	ctx context.Context
}

// NewHeadless creates a headless display bound to ctx.
func NewHeadless(ctx context.Context) *Headless {
	return &Headless{ctx: ctx}
}

func (h *Headless) Run() error {
	<-h.ctx.Done()
	return nil
}
