package ports

import "channel-metrics-service/internal/worker"

type DispatcherPort interface {
	Dispatch(name string, task worker.Task) *worker.Handle
}
