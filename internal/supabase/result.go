package supabase

import (
	"encoding/json"
)

// Result mirrors an identity provider response: its status code and decoded JSON body
type Result struct {
	Status int
	Body   map[string]any
}

// decodeBody parses a JSON object defensively; anything else yields an empty map
func decodeBody(raw []byte) map[string]any {
	body := map[string]any{}
	if len(raw) == 0 {
		return body
	}
	if err := json.Unmarshal(raw, &body); err != nil || body == nil {
		return map[string]any{}
	}
	return body
}

// ID returns the user id. A missing, empty or non-string id means unauthenticated.
func (r Result) ID() (string, bool) {
	id, ok := r.Body["id"].(string)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}

// Email returns the user's email, or nil when the provider did not send one
func (r Result) Email() *string {
	email, ok := r.Body["email"].(string)
	if !ok {
		return nil
	}
	return &email
}

// ErrorMessage picks the provider's error text from the fields it is known to use
func (r Result) ErrorMessage() string {
	for _, key := range []string{"error_description", "msg", "message", "error"} {
		if msg, ok := r.Body[key].(string); ok && msg != "" {
			return msg
		}
	}
	return ""
}
