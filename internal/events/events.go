package events

import (
	"encoding/json"
	"time"
)

// Engine-to-UI shell event types.
const (
	SessionChanged       = "session_changed"
	ApplicationSubmitted = "application_submitted"
	ApplicationDeleted   = "application_deleted"
	StatusUpdated        = "status_updated"
	JobPosted            = "job_posted"
	JobDeleted           = "job_deleted"
)

type Event struct {
	Type      string          `json:"type"`
	Version   int             `json:"v"`
	At        time.Time       `json:"at"`
	RequestID string          `json:"request_id,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
}

func Make(reqID, typ string, data any) string {
	var raw json.RawMessage
	if data != nil {
		b, _ := json.Marshal(data)
		raw = b
	}
	e := Event{
		Type:      typ,
		Version:   1,
		At:        time.Now().UTC(),
		RequestID: reqID,
		Data:      raw,
	}
	b, _ := json.Marshal(e)
	return string(b)
}
