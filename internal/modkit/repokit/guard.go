package repokit

import (
	"context"
	"fmt"
	"time"

	"apisupport/internal/platform/logger"
)

// guardTimeout bounds MustGuard when ctx carries no deadline
const guardTimeout = 5 * time.Second

type guarder interface {
	Guard(context.Context) error
}

// MustGuard pings every configured backend and panics on failure; serve calls it before listening
func MustGuard(ctx context.Context, st guarder) {
	if st == nil {
		panic("store guard failed: nil store")
	}
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, guardTimeout)
		defer cancel()
	}
	start := time.Now()
	if err := st.Guard(ctx); err != nil {
		panic(fmt.Errorf("store guard failed: %w", err))
	}
	logger.C(ctx).Debug().Dur("elapsed", time.Since(start)).Msg("store guard passed")
}
