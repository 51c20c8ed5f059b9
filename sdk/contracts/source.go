package contracts

// Connection is an open input port. It is owned by whoever opened it and is
// only ever closed from that same goroutine.
type Connection interface {
	// Name returns the port name the connection was opened with.
	Name() string
	// Close disconnects from the port and stops event delivery.
	Close() error
}

// EventSource abstracts a hardware MIDI input backend. Implementations must
// not block inside the delivery callback beyond timestamping and handing the
// event off.
type EventSource interface {
	// Ports lists the names of the currently available input ports.
	Ports() ([]string, error)
	// Open connects to the named port and delivers every incoming event to
	// fn from the backend's own delivery context.
	Open(name string, fn func(Event)) (Connection, error)
	// Close releases the backend itself. Open connections must be closed
	// first.
	Close() error
}
