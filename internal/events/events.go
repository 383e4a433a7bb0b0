package events

import (
	"encoding/json"
	"time"
)

// Research progress event types, published by the runner and streamed to
// SSE subscribers.
const (
	TypeResearchStarted  = "research_started"
	TypeIdentityResolved = "identity_resolved"
	TypeDossierSent      = "dossier_sent"
	TypeResearchFailed   = "research_failed"
	TypeFeedbackRecorded = "feedback_recorded"
)

type Event struct {
	Type      string          `json:"type"`
	Version   int             `json:"v"`
	At        time.Time       `json:"at"`
	RequestID string          `json:"request_id,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
}

func MakeEvent(reqID, typ string, v int, data any) string {
	var raw json.RawMessage
	if data != nil {
		b, _ := json.Marshal(data)
		raw = b
	}
	e := Event{
		Type:      typ,
		Version:   v,
		At:        time.Now().UTC(),
		RequestID: reqID,
		Data:      raw,
	}
	b, _ := json.Marshal(e)
	return string(b)
}
