package messaging

import (
	"reflect"
	"testing"
	"time"

	"input-selector/internal/logger"
	"input-selector/internal/types"
)

func TestStatusFields(t *testing.T) {
	got := statusFields(types.Status{
		State:    types.StateCentered,
		Input:    "SFC",
		Address:  0x14,
		Position: 512,
	})
	want := map[string]interface{}{
		"state":    "centered",
		"input":    "SFC",
		"address":  "0x14",
		"position": "512",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("statusFields = %v, want %v", got, want)
	}
}

func TestUptimeFields(t *testing.T) {
	got := uptimeFields([]types.Uptime{{Label: "UPTIME", Seconds: 3600}, {Label: "PSX", Seconds: 60}})
	want := map[string]interface{}{"UPTIME": "3600", "PSX": "60"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("uptimeFields = %v, want %v", got, want)
	}
}

func TestPublishNeverBlocks(t *testing.T) {
	// No worker is running, so every publish after the first must replace
	// the pending update instead of blocking.
	r := NewRedisClient("127.0.0.1:1", logger.Discard())
	defer r.Close()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 10; i++ {
			r.PublishStatus(types.Status{Position: i})
			r.PublishUptime([]types.Uptime{{Label: "UPTIME", Seconds: uint32(i)}})
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked")
	}

	if s := <-r.status; s.Position != 9 {
		t.Errorf("pending status position = %d, want the newest (9)", s.Position)
	}
	if u := <-r.uptime; u[0].Seconds != 9 {
		t.Errorf("pending uptime = %v, want the newest", u)
	}
}

func TestCloseStopsWorker(t *testing.T) {
	r := NewRedisClient("127.0.0.1:1", logger.Discard())
	r.Start()
	done := make(chan struct{})
	go func() {
		r.Close()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(6 * time.Second):
		t.Fatal("Close hung")
	}
}
