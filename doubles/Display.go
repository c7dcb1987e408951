package doubles

import (
	"context"
	"sync"
)

type DisplayCallback string

const (
	DisplaySuccess DisplayCallback = "success"
	DisplayFailure DisplayCallback = "failure"
)

type Rendered[VM any] struct {
	Callback  DisplayCallback
	ViewModel VM
}

// RecordingDisplay is a Display that remembers every ViewModel it received.
// It is safe to render into it from the owning loop while a test reads it.
type RecordingDisplay[VM any] struct {
	mutex    sync.Mutex
	received []Rendered[VM]
	notify   chan struct{}
}

func (d *RecordingDisplay[VM]) DisplaySuccess(ctx context.Context, vm VM) {
	d.record(Rendered[VM]{Callback: DisplaySuccess, ViewModel: vm})
}

func (d *RecordingDisplay[VM]) DisplayFailure(ctx context.Context, vm VM) {
	d.record(Rendered[VM]{Callback: DisplayFailure, ViewModel: vm})
}

func (d *RecordingDisplay[VM]) record(r Rendered[VM]) {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	d.received = append(d.received, r)
	select {
	case d.getNotify() <- struct{}{}:
	default:
	}
}

// Received returns a copy of everything rendered so far.
func (d *RecordingDisplay[VM]) Received() []Rendered[VM] {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	return append([]Rendered[VM]{}, d.received...)
}

func (d *RecordingDisplay[VM]) LastReceived() (Rendered[VM], bool) {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	if len(d.received) == 0 {
		return Rendered[VM]{}, false
	}
	return d.received[len(d.received)-1], true
}

// Rendered signals after each render.
// Signals are coalesced, so re-check Received after waking up.
func (d *RecordingDisplay[VM]) Rendered() <-chan struct{} {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	return d.getNotify()
}

func (d *RecordingDisplay[VM]) getNotify() chan struct{} {
	if d.notify == nil {
		d.notify = make(chan struct{}, 1)
	}
	return d.notify
}
