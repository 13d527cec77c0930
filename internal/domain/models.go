package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// Verdict is the binary outcome of a probe.
type Verdict bool

const (
	Down Verdict = false
	Up   Verdict = true
)

func (v Verdict) String() string {
	if v {
		return "UP"
	}
	return "DOWN"
}

func (v Verdict) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.String())
}

func (v *Verdict) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	switch s {
	case "UP":
		*v = Up
	case "DOWN":
		*v = Down
	default:
		return fmt.Errorf("unknown verdict %q", s)
	}
	return nil
}

// ObservedState is the last-known state of a target. It is stored and
// copied by value, so an entry is always replaced as a whole.
type ObservedState struct {
	Verdict    Verdict   `json:"status"`
	CheckedAt  time.Time `json:"last_checked"`
	HTTPStatus int       `json:"code,omitempty"` // 0 when no response was received
}
