package api

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/multiwatch/multiwatch-go/pkg/collection"
	"github.com/multiwatch/multiwatch-go/pkg/discovery"
)

func TestFromView(t *testing.T) {
	v := collection.View{
		Records: []collection.RecordView{
			{ID: "b", Name: "Tea", Elapsed: "00:01:00", ElapsedMs: 60000, Running: true, Status: "Running", ToggleLabel: "Pause"},
			{ID: "a", Name: "Oven", Elapsed: "00:00:00", Status: "Paused", ToggleLabel: "Start", Error: "bad"},
		},
		Prompt:     &collection.PromptView{Message: "Remove?", ConfirmLabel: "Remove", Queued: 1},
		Focus:      "confirm",
		LoopActive: true,
	}

	got := FromView(v)

	if got.Total != 2 || got.Running != 1 {
		t.Errorf("Total, Running = %d, %d, want 2, 1", got.Total, got.Running)
	}
	if got.Stopwatches[0].ID != "b" || got.Stopwatches[1].Error != "bad" {
		t.Errorf("Stopwatches = %+v, order or fields lost", got.Stopwatches)
	}
	if got.Prompt == nil || got.Prompt.Queued != 1 || got.Prompt.ConfirmLabel != "Remove" {
		t.Errorf("Prompt = %+v", got.Prompt)
	}
	if !got.LoopActive || got.Focus != "confirm" {
		t.Errorf("LoopActive, Focus = %v, %q", got.LoopActive, got.Focus)
	}
}

func TestFromViewEmpty(t *testing.T) {
	got := FromView(collection.View{})
	if got.Stopwatches == nil {
		t.Error("Stopwatches = nil, want empty slice so JSON shows []")
	}
	if got.Prompt != nil {
		t.Errorf("Prompt = %+v, want nil", got.Prompt)
	}
}

func TestDiscoverPeers(t *testing.T) {
	browse := func(ctx context.Context, iface string) ([]discovery.Service, error) {
		if _, ok := ctx.Deadline(); !ok {
			t.Error("browse context has no deadline")
		}
		return []discovery.Service{
			{Instance: "kitchen", Host: "kitchen.local.", Port: 8080, Timers: 3},
			{Instance: "self", Port: 8081},
		}, nil
	}

	resp, err := DiscoverPeers(context.Background(), browse, "bogus", "self")
	if err != nil {
		t.Fatalf("DiscoverPeers() error = %v", err)
	}
	if resp.Timeout != DefaultPeerTimeout.String() {
		t.Errorf("Timeout = %q, want default", resp.Timeout)
	}
	if len(resp.Peers) != 1 || resp.Peers[0].Instance != "kitchen" || resp.Peers[0].Timers != 3 {
		t.Errorf("Peers = %+v, want only kitchen", resp.Peers)
	}
	if time.Since(resp.DiscoveredAt) > time.Minute {
		t.Errorf("DiscoveredAt = %v", resp.DiscoveredAt)
	}
}

func TestDiscoverPeersError(t *testing.T) {
	browse := func(context.Context, string) ([]discovery.Service, error) {
		return nil, errors.New("no multicast")
	}
	if _, err := DiscoverPeers(context.Background(), browse, "1s", ""); err == nil {
		t.Error("DiscoverPeers() error = nil, want error")
	}
}
