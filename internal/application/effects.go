package application

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"swapcore/internal/domain"
)

// NotificationPayload is the structured popup payload handed to the
// notification sink, one per accepted transition.
type NotificationPayload struct {
	ID         string             `json:"id"`
	OrderID    domain.OrderID     `json:"orderId"`
	Status     domain.OrderStatus `json:"status,omitempty"`
	Summary    string             `json:"summary"`
	Descriptor string             `json:"descriptor,omitempty"`
	Success    *bool              `json:"success,omitempty"`
}

// CancellationSummary derives the specialized cancellation text from an
// order's original summary.
func CancellationSummary(id domain.OrderID, summary string) string {
	if summary == "" {
		return fmt.Sprintf("Order %s was cancelled", id)
	}
	return fmt.Sprintf("Order '%s' was cancelled", summary)
}

// NotificationFor maps a transition onto its popup payload.
func NotificationFor(t Transition) NotificationPayload {
	p := NotificationPayload{
		ID:      uuid.NewString(),
		OrderID: t.Order.ID,
		Summary: t.Order.Summary,
	}
	switch t.Kind {
	case TransitionSubmitted:
		p.Status = "submitted"
	case TransitionFulfilled:
		p.Status = domain.OrderStatusFulfilled
		p.Descriptor = "was traded"
	case TransitionCancelled:
		success := true
		p.Success = &success
		p.Summary = CancellationSummary(t.Order.ID, t.Order.Summary)
	default: // expired
		success := false
		p.Success = &success
		p.Status = domain.OrderStatusExpired
	}
	return p
}

// Cue names an audio asset played on an order transition.
type Cue string

const (
	CueSend    Cue = "send"
	CueSuccess Cue = "success"
	CueError   Cue = "error"
)

// CueFor selects the audio cue for a transition kind. The cancellation cue is
// a configurable entry: it currently reuses the error cue while product
// decides whether cancellation deserves its own sound.
func CueFor(kind TransitionKind, cancellation Cue) Cue {
	switch kind {
	case TransitionSubmitted:
		return CueSend
	case TransitionFulfilled:
		return CueSuccess
	case TransitionCancelled:
		return cancellation
	default:
		return CueError
	}
}

// AudioHandle is a process-wide handle for one cue's asset, constructed at
// most once per cue for the lifetime of the process and reused thereafter.
type AudioHandle struct {
	Cue  Cue
	Path string
}

var cueAssets = map[Cue]string{
	CueSend:    "/audio/send.mp3",
	CueSuccess: "/audio/success.mp3",
	CueError:   "/audio/error.mp3",
}

// CuePlayer is the default SoundPlayer: it lazily builds one handle per cue
// and forwards each play to the emit callback.
type CuePlayer struct {
	mu      sync.Mutex
	handles map[Cue]*AudioHandle
	emit    func(h *AudioHandle)
}

func NewCuePlayer(emit func(h *AudioHandle)) *CuePlayer {
	return &CuePlayer{handles: make(map[Cue]*AudioHandle), emit: emit}
}

func (p *CuePlayer) handleFor(c Cue) *AudioHandle {
	p.mu.Lock()
	defer p.mu.Unlock()
	h, ok := p.handles[c]
	if !ok {
		h = &AudioHandle{Cue: c, Path: cueAssets[c]}
		p.handles[c] = h
	}
	return h
}

func (p *CuePlayer) Play(c Cue) {
	h := p.handleFor(c)
	if p.emit != nil {
		p.emit(h)
	}
}

// Notifier subscribes the side-effect mappings to the order book: exactly one
// notification and one audio cue per accepted transition.
type Notifier struct {
	Sink            NotificationSink
	Sounds          SoundPlayer
	CancellationCue Cue
}

func NewNotifier(sink NotificationSink, sounds SoundPlayer) *Notifier {
	return &Notifier{Sink: sink, Sounds: sounds, CancellationCue: CueError}
}

func (n *Notifier) OnTransition(t Transition) {
	if n.Sink != nil {
		n.Sink.Notify(NotificationFor(t))
	}
	if n.Sounds != nil {
		n.Sounds.Play(CueFor(t.Kind, n.CancellationCue))
	}
}
