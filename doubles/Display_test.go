package doubles_test

import (
	"context"
	"testing"

	"go.llib.dev/testcase/assert"

	"scenes"
	"scenes/doubles"
)

var _ scenes.Display[int] = &doubles.RecordingDisplay[int]{}

func TestRecordingDisplay(t *testing.T) {
	var d doubles.RecordingDisplay[string]

	_, ok := d.LastReceived()
	assert.False(t, ok)

	d.DisplaySuccess(context.Background(), "OK")
	d.DisplayFailure(context.Background(), "Boom!")

	assert.Equal(t, []doubles.Rendered[string]{
		{Callback: doubles.DisplaySuccess, ViewModel: "OK"},
		{Callback: doubles.DisplayFailure, ViewModel: "Boom!"},
	}, d.Received())

	last, ok := d.LastReceived()
	assert.True(t, ok)
	assert.Equal(t, doubles.DisplayFailure, last.Callback)

	select {
	case <-d.Rendered():
	default:
		t.Fatal("render signal expected")
	}
}
