// Package api defines the JSON shapes of the multiwatch web API.
package api

import (
	"time"

	"github.com/multiwatch/multiwatch-go/pkg/collection"
	"github.com/multiwatch/multiwatch-go/pkg/discovery"
)

// Stopwatch is one stopwatch in API responses.
type Stopwatch struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Elapsed     string `json:"elapsed"`
	ElapsedMs   int64  `json:"elapsed_ms"`
	Running     bool   `json:"running"`
	Status      string `json:"status"`
	ToggleLabel string `json:"toggle_label"`
	Placeholder string `json:"placeholder"`
	Draft       string `json:"draft,omitempty"`
	Error       string `json:"error,omitempty"`
	Editing     bool   `json:"editing,omitempty"`
}

// Prompt is the open confirmation prompt.
type Prompt struct {
	Message      string `json:"message"`
	ConfirmLabel string `json:"confirm_label"`
	Queued       int    `json:"queued"`
}

// View is the response for GET /api/v1/stopwatches and every SSE event.
// Stopwatches are ordered newest first.
type View struct {
	Stopwatches []Stopwatch `json:"stopwatches"`
	Total       int         `json:"total"`
	Running     int         `json:"running"`
	Prompt      *Prompt     `json:"prompt,omitempty"`
	Focus       string      `json:"focus,omitempty"`
	LoopActive  bool        `json:"loop_active"`
}

// FromView converts an engine view.
func FromView(v collection.View) View {
	out := View{
		Stopwatches: make([]Stopwatch, 0, len(v.Records)),
		Total:       len(v.Records),
		Focus:       v.Focus,
		LoopActive:  v.LoopActive,
	}
	for _, r := range v.Records {
		if r.Running {
			out.Running++
		}
		out.Stopwatches = append(out.Stopwatches, Stopwatch{
			ID:          r.ID,
			Name:        r.Name,
			Elapsed:     r.Elapsed,
			ElapsedMs:   r.ElapsedMs,
			Running:     r.Running,
			Status:      r.Status,
			ToggleLabel: r.ToggleLabel,
			Placeholder: r.Placeholder,
			Draft:       r.Draft,
			Error:       r.Error,
			Editing:     r.Editing,
		})
	}
	if p := v.Prompt; p != nil {
		out.Prompt = &Prompt{
			Message:      p.Message,
			ConfirmLabel: p.ConfirmLabel,
			Queued:       p.Queued,
		}
	}
	return out
}

// AddRequest is the request body for POST /api/v1/stopwatches.
type AddRequest struct {
	Name string `json:"name,omitempty"`
	// Time presets the elapsed time, in any format the time input accepts.
	Time string `json:"time,omitempty"`
}

// RenameRequest is the request body for PUT /api/v1/stopwatches/{id}/name.
type RenameRequest struct {
	Name string `json:"name"`
}

// DraftRequest is the request body for PUT /api/v1/stopwatches/{id}/draft.
type DraftRequest struct {
	Draft string `json:"draft"`
}

// TimeRequest is the request body for PUT /api/v1/stopwatches/{id}/time.
// An empty Text applies the current draft.
type TimeRequest struct {
	Text string `json:"text,omitempty"`
}

// ErrorResponse is returned with every 4xx and 5xx status.
type ErrorResponse struct {
	Error string `json:"error"`
	Hint  string `json:"hint,omitempty"`
	// View is the state after the failed request, when one was applied.
	View *View `json:"view,omitempty"`
}

// Peer is another multiwatch instance found on the local network.
type Peer struct {
	Instance  string   `json:"instance"`
	Host      string   `json:"host"`
	Port      int      `json:"port"`
	Addresses []string `json:"addresses,omitempty"`
	Version   string   `json:"version,omitempty"`
	Path      string   `json:"path,omitempty"`
	Timers    int      `json:"timers"`
}

// PeerListResponse is the response for GET /api/v1/peers.
type PeerListResponse struct {
	Peers        []Peer    `json:"peers"`
	DiscoveredAt time.Time `json:"discovered_at"`
	Timeout      string    `json:"timeout"`
}

// FromService converts a discovered service.
func FromService(svc discovery.Service) Peer {
	return Peer{
		Instance:  svc.Instance,
		Host:      svc.Host,
		Port:      svc.Port,
		Addresses: svc.Addresses,
		Version:   svc.Version,
		Path:      svc.Path,
		Timers:    svc.Timers,
	}
}
