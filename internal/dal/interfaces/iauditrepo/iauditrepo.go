package iauditrepo

import (
	"context"

	"github.com/abhinav28birajdar/TownTap-sub006/internal/service/models/event"
)

// IAuditorRepository is interface for the dispatch audit repository.
type IAuditorRepository interface {
	LogDispatchEvent(ctx context.Context, evt event.Event) error
}
