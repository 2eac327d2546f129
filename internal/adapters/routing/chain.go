package routing

import (
	"context"
	"errors"
	"log"

	"trip-log-service/internal/domain"
	"trip-log-service/internal/platform/obs"
	"trip-log-service/internal/ports"
)

// FallbackRouteProvider asks Primary first and Fallback when Primary fails.
// Context cancellation is returned as is rather than masked by the fallback.
type FallbackRouteProvider struct {
	Primary  ports.RouteProvider
	Fallback ports.RouteProvider
}

func (f *FallbackRouteProvider) GetRoute(ctx context.Context, current, pickup, dropoff string) (domain.RouteSummary, error) {
	if f.Primary == nil {
		return f.Fallback.GetRoute(ctx, current, pickup, dropoff)
	}

	r, err := f.Primary.GetRoute(ctx, current, pickup, dropoff)
	if err == nil {
		return r, nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) || f.Fallback == nil {
		return domain.RouteSummary{}, err
	}

	log.Printf("req_id=%s op=route.fallback err=%v", obs.RequestID(ctx), err)
	return f.Fallback.GetRoute(ctx, current, pickup, dropoff)
}
