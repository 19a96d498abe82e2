package session

import (
	"encoding/json"
	"maps"
)

// Record is the persisted form of a session.
type Record struct {
	SessionID   string         `json:"session_id"`
	Since       int64          `json:"since"`
	Fingerprint string         `json:"fingerprint"`
	Values      map[string]any `json:"values"`
}

func (r Record) empty() bool {
	return r.SessionID == "" && r.Fingerprint == ""
}

func encodeRecord(r Record) ([]byte, error) {
	if r.Values == nil {
		r.Values = map[string]any{}
	}
	return json.Marshal(r)
}

func decodeRecord(data []byte) (Record, error) {
	var r Record
	if err := json.Unmarshal(data, &r); err != nil {
		return Record{}, err
	}
	if r.Values == nil {
		r.Values = map[string]any{}
	}
	return r, nil
}

func cloneValues(v map[string]any) map[string]any {
	if v == nil {
		return map[string]any{}
	}
	return maps.Clone(v)
}
