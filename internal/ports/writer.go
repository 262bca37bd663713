package ports

import "github.com/ghalamif/GraphiteFlow/internal/domain"

// Writer is one registered destination for sample batches. Write is
// invoked once per collection cycle from daemon-managed goroutines and
// must tolerate concurrent calls. Transient delivery failures are the
// writer's business: they are logged, not returned, so one broken
// destination never stalls the pipeline.
type Writer interface {
	Write(batch *domain.SampleBatch) error
	Name() string
}
