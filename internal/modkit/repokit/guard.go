package repokit

import (
	"context"
	"fmt"
	"time"
)

// guardTimeout applies when ctx carries no deadline
const guardTimeout = 5 * time.Second

// MustGuard panics unless every configured backend of st answers.
// Binaries call it once at startup
func MustGuard(ctx context.Context, st interface{ Guard(context.Context) error }) {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, guardTimeout)
		defer cancel()
	}
	if err := st.Guard(ctx); err != nil {
		panic(fmt.Errorf("store not ready: %w", err))
	}
}
