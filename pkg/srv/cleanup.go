package srv

import "context"

// cleanupService only has work to do on shutdown, e.g. closing the database.
type cleanupService struct {
	cleanup func() error
}

func (c *cleanupService) Start(ctx context.Context) error {
	<-ctx.Done()
	return nil
}

func (c *cleanupService) Shutdown(ctx context.Context) error {
	if c.cleanup != nil {
		return c.cleanup()
	}
	return nil
}

func NewCleanup(fn func() error) Service {
	return &cleanupService{cleanup: fn}
}

type funcService struct {
	start func(ctx context.Context) error
}

func (f *funcService) Start(ctx context.Context) error {
	return f.start(ctx)
}

func (f *funcService) Shutdown(context.Context) error {
	return nil
}

// NewFunc wraps a blocking function that returns once ctx is cancelled.
func NewFunc(fn func(ctx context.Context) error) Service {
	return &funcService{start: fn}
}
