package stats

import (
	"context"
	"log"

	"github.com/Domenick1991/routesuggest/internal/dataset"
	"github.com/Domenick1991/routesuggest/internal/domain"
)

type Store interface {
	RecordSearch(ctx context.Context, source, destination string, found bool) error
	TopRoutes(ctx context.Context, limit int) ([]domain.PairStat, error)
}

// Recorder folds search events consumed from Kafka into the stats store.
type Recorder struct {
	store Store
}

func NewRecorder(store Store) *Recorder {
	return &Recorder{store: store}
}

// Handle records one search event. Events whose codes are not airport codes
// are skipped; they would otherwise grow the counters without bound.
func (r *Recorder) Handle(ctx context.Context, event domain.SearchEvent) error {
	if !dataset.ValidCode(event.Source) || !dataset.ValidCode(event.Destination) {
		log.Printf("skipping event %q with malformed pair %q -> %q", event.ID, event.Source, event.Destination)
		return nil
	}

	source := dataset.Normalize(event.Source)
	destination := dataset.Normalize(event.Destination)
	return r.store.RecordSearch(ctx, source, destination, event.Found)
}

var _ Store = (*RedisStore)(nil)
