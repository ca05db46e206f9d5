package progress

import (
	"context"
	"encoding/json"
	"io"
	"sync"
)

// LineSink emits each event as a JSON-RPC notification ("$/progress") on a
// shared writer, preserving call order by holding a mutex across the whole
// encode-and-write so concurrent handlers on the same duplex connection
// never interleave a single notification's bytes.
type LineSink struct {
	mu     *sync.Mutex
	w      io.Writer
	callID string
}

// NewLineSink builds a Sink that writes to w (typically stdout), tagging
// every event with the call id that requested it so a client with several
// in-flight tool calls can attribute progress correctly.
func NewLineSink(w io.Writer, mu *sync.Mutex, callID string) *LineSink {
	return &LineSink{w: w, mu: mu, callID: callID}
}

type lineNotification struct {
	JSONRPC string `json:"jsonrpc"`
	Method  string `json:"method"`
	Params  struct {
		CallID string `json:"callId"`
		Event  Event  `json:"event"`
	} `json:"params"`
}

func (s *LineSink) Notify(_ context.Context, event Event) {
	if s == nil || s.w == nil {
		return
	}
	var msg lineNotification
	msg.JSONRPC = "2.0"
	msg.Method = "$/progress"
	msg.Params.CallID = s.callID
	msg.Params.Event = event

	s.mu.Lock()
	defer s.mu.Unlock()
	enc := json.NewEncoder(s.w)
	_ = enc.Encode(msg)
}
