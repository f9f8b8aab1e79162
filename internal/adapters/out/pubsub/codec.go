// Package pubsub carries order change notices between the write side and the
// realtime hub. Bus is the in-process transport; pgnotify and redisnotify
// reach other instances.
package pubsub

import (
	"encoding/json"
	"fmt"

	"marketplace/internal/core/ports"
)

// Channel is the channel name used by the networked transports.
const Channel = "order_changes"

// Encode serializes a change for the wire.
func Encode(change ports.OrderChange) (string, error) {
	b, err := json.Marshal(change)
	if err != nil {
		return "", fmt.Errorf("encode order change: %w", err)
	}
	return string(b), nil
}

// Decode parses a change received from the wire.
func Decode(payload string) (ports.OrderChange, error) {
	var change ports.OrderChange
	if err := json.Unmarshal([]byte(payload), &change); err != nil {
		return ports.OrderChange{}, fmt.Errorf("decode order change: %w", err)
	}
	if change.Number == "" {
		return ports.OrderChange{}, fmt.Errorf("decode order change: missing number in %q", payload)
	}
	return change, nil
}
