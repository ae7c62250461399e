package api

import (
	"bytes"
	"encoding/json"
)

// Ref is a reference the backend serializes inconsistently: sometimes a bare
// id string, sometimes the populated library object. Decoding normalizes both
// shapes here so callers never branch on the wire form.
type Ref struct {
	ID        string
	Populated *Library
}

// UnmarshalJSON accepts either "libraryId": "<id>" or a populated
// {_id, name, code} object.
func (r *Ref) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*r = Ref{}
		return nil
	}
	if trimmed[0] == '"' {
		var id string
		if err := json.Unmarshal(trimmed, &id); err != nil {
			return err
		}
		*r = Ref{ID: id}
		return nil
	}
	var lib Library
	if err := json.Unmarshal(trimmed, &lib); err != nil {
		return err
	}
	*r = Ref{ID: lib.ID, Populated: &lib}
	return nil
}

// MarshalJSON writes the bare id; population is a server-side concern.
func (r Ref) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.ID)
}

// Name returns the populated library name when present, otherwise the id.
func (r Ref) Name() string {
	if r.Populated != nil && r.Populated.Name != "" {
		return r.Populated.Name
	}
	return r.ID
}

// IsZero reports whether the reference is empty.
func (r Ref) IsZero() bool {
	return r.ID == "" && r.Populated == nil
}

// Resolve fills in the populated library from the given list when the
// reference only carries an id.
func (r Ref) Resolve(libraries []Library) Ref {
	if r.Populated != nil || r.ID == "" {
		return r
	}
	for i := range libraries {
		if libraries[i].ID == r.ID {
			lib := libraries[i]
			return Ref{ID: r.ID, Populated: &lib}
		}
	}
	return r
}
