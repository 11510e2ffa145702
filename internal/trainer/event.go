package trainer

// EventType is the kind of state change an observer is notified about.
type EventType string

const (
	// StartedEvent is emitted when a session starts.
	StartedEvent EventType = "started"
	// EpochEvent is emitted after every epoch.
	EpochEvent EventType = "epoch"
	// FinishedEvent is emitted when a session reaches its total iterations.
	FinishedEvent EventType = "finished"
	// CancelledEvent is emitted when a running session is cancelled.
	CancelledEvent EventType = "cancelled"
	// ResetEvent is emitted after the neuron and history are reset.
	ResetEvent EventType = "reset"
	// RegeneratedEvent is emitted after the dataset is replaced.
	RegeneratedEvent EventType = "regenerated"
)

// Event describes a change of the training state.
type Event struct {
	Type    EventType
	Session Session
	// Cost is the mean squared error of the epoch, set only for EpochEvent.
	Cost  float64
	State State
}

// Observer is notified after every change of the training state.
// Observers are called on the goroutine driving the trainer and must not block.
type Observer interface {
	Observe(event Event)
}

// ObserverFunc adapts a function to an Observer.
type ObserverFunc func(event Event)

// Observe calls f(event).
func (f ObserverFunc) Observe(event Event) {
	f(event)
}
