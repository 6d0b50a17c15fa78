package statuscache

import (
	"context"

	"github.com/timour/delivery-service/api"
	"github.com/timour/delivery-service/internal/apperr"
)

// rejectedFrom lists, for each target status, the current statuses from
// which the transition is redundant or backwards (spec.md §4.4.2).
var rejectedFrom = map[api.DeliveryStatus]map[api.DeliveryStatus]string{
	api.StatusRiderAccepted: {
		api.StatusRiderAccepted:  "rider already accepted",
		api.StatusRiderPickedUp:  "order already picked up",
		api.StatusRiderDelivered: "order already delivered",
	},
	api.StatusRiderPickedUp: {
		api.StatusRiderPickedUp:  "order already picked up",
		api.StatusRiderDelivered: "order has already picked up",
	},
	api.StatusRiderDelivered: {
		api.StatusRiderDelivered: "order already delivered",
	},
}

// Transition reads the current status for orderID and, if target is a legal
// forward move, writes it. A redundant or backwards transition is rejected
// with TransitionRejected (mapped to FailedPrecondition at the RPC layer)
// without mutating the cache. A target that is not one of the forward
// statuses (RiderUnaccept, or an unknown value) is rejected with
// InvalidArgument, also without mutating the cache.
func (c *Cache) Transition(ctx context.Context, orderID string, target api.DeliveryStatus) error {
	current, err := c.Get(ctx, orderID)
	if err != nil {
		return err
	}

	reasons, ok := rejectedFrom[target]
	if !ok {
		return apperr.New(apperr.KindInvalidArgument, "invalid target status "+string(target))
	}
	if reason, rejected := reasons[current]; rejected {
		return apperr.New(apperr.KindTransitionRejected, reason)
	}

	return c.Set(ctx, orderID, target)
}
