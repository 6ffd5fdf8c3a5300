package errors

import (
	"encoding/json"
	"maps"
)

// Wire is the JSON-serializable envelope returned by the API
//
//	{"error": "<code>", "description": "<text>", ...context}
type Wire struct {
	Code        ErrorCode
	Description string
	Context     map[string]any
}

// MarshalJSON flattens Context next to error/description; context keys win on collision
func (w Wire) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(w.Context)+2)
	out["error"] = w.Code
	out["description"] = w.Description
	maps.Copy(out, w.Context)
	return json.Marshal(out)
}

// UnmarshalJSON reads an envelope back; unknown keys land in Context
func (w *Wire) UnmarshalJSON(b []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*w = Wire{}
	if v, ok := raw["error"].(string); ok {
		w.Code = ErrorCode(v)
	}
	if v, ok := raw["description"].(string); ok {
		w.Description = v
	}
	delete(raw, "error")
	delete(raw, "description")
	if len(raw) > 0 {
		w.Context = raw
	}
	return nil
}

// WireFrom converts any error into a Wire payload
// Foreign errors render as server.error with the generic description so internals never leak
// If err is nil, returns the zero-value Wire (no error)
func WireFrom(err error) Wire {
	if err == nil {
		return Wire{}
	}
	if e, ok := As(err); ok {
		return e.ToWire()
	}
	return Wire{Code: ErrorCodeServer, Description: DefaultDescription(ErrorCodeServer)}
}

func cloneContext(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	return maps.Clone(m)
}
