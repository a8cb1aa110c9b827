package events

import (
	"encoding/json"
	"time"
)

// Job change notifications sent to /events subscribers.
const (
	JobCreated = "job_created"
	JobUpdated = "job_updated"
	JobDeleted = "job_deleted"
	Ping       = "ping"
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

// JobEvent is the v1 envelope for a change to job id.
func JobEvent(reqID, typ string, id int64) string {
	return MakeEvent(reqID, typ, 1, map[string]any{"id": id})
}
