package queue

import (
	"encoding/json"
	"fmt"
	"strings"
)

// MessageVersion is the current payload schema version.
const MessageVersion = 1

// EventMatchComputed is the event type published after a successful match.
const EventMatchComputed = "match.computed"

// Message is the payload sent to downstream consumers when a match is
// computed. It carries the outcome, not the profile.
type Message struct {
	Type          string         `json:"type"`
	UserID        string         `json:"userId"`
	JobID         string         `json:"jobId"`
	MatchScore    int            `json:"matchScore"`
	Breakdown     map[string]int `json:"breakdown"`
	MissingSkills []string       `json:"missingSkills"`
	RequestID     string         `json:"requestId"`
	ComputedAt    string         `json:"computedAt"`
	Version       int            `json:"version"`
}

// RoutingKey is "<type>.<job id>" so consumers can bind per job.
func (m Message) RoutingKey() string {
	jobID := strings.NewReplacer(".", "_", "*", "_", "#", "_").Replace(m.JobID)
	if jobID == "" {
		jobID = "unknown"
	}
	return fmt.Sprintf("%s.%s", m.Type, jobID)
}

// EncodeMessage returns the JSON representation of a message.
func EncodeMessage(msg Message) ([]byte, error) {
	return json.Marshal(msg)
}

// DecodeMessage parses a JSON payload into a Message.
func DecodeMessage(payload []byte) (Message, error) {
	var msg Message
	if err := json.Unmarshal(payload, &msg); err != nil {
		return Message{}, err
	}
	if msg.Version > MessageVersion {
		return Message{}, fmt.Errorf("unsupported message version %d", msg.Version)
	}
	return msg, nil
}
