package telemetry

// FakePublisher records published snapshots for test assertions.
type FakePublisher struct {
	// Snapshots contains all snapshots that were published.
	Snapshots []Snapshot

	// Payloads contains the JSON payloads that were published.
	Payloads [][]byte

	// PublishError, if set, will be returned by Publish.
	PublishError error

	// Closed tracks if Close was called.
	Closed bool
}

// NewFakePublisher creates a FakePublisher for testing.
func NewFakePublisher() *FakePublisher {
	return &FakePublisher{}
}

// Publish records the snapshot.
func (f *FakePublisher) Publish(s Snapshot) error {
	if f.PublishError != nil {
		return f.PublishError
	}

	f.Snapshots = append(f.Snapshots, s)

	payload, err := FormatPayload(s)
	if err != nil {
		return err
	}
	f.Payloads = append(f.Payloads, payload)

	return nil
}

// Close marks the publisher as closed.
func (f *FakePublisher) Close() error {
	f.Closed = true
	return nil
}

// Reset clears recorded snapshots.
func (f *FakePublisher) Reset() {
	f.Snapshots = nil
	f.Payloads = nil
	f.Closed = false
	f.PublishError = nil
}
