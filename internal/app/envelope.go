package app

import "encoding/json"

// Envelope is what every API call returns. It marshals to
//
//	{"data":{"success":true,"message":"...","<Key>":<Payload>}}
//
// Key varies per call; an empty Key omits the payload entirely.
// Extra fields (e.g. "token", "reference") sit next to the payload.
type Envelope[T any] struct {
	Success bool
	Message string
	Key     string
	Payload T
	Extra   map[string]any
}

func ok[T any](key, msg string, v T) Envelope[T] {
	return Envelope[T]{Success: true, Message: msg, Key: key, Payload: v}
}

func (e Envelope[T]) with(k string, v any) Envelope[T] {
	extra := make(map[string]any, len(e.Extra)+1)
	for ek, ev := range e.Extra {
		extra[ek] = ev
	}
	extra[k] = v
	e.Extra = extra
	return e
}

// Body is the inner "data" object as a map, handy for handlers and tests.
func (e Envelope[T]) Body() map[string]any {
	body := make(map[string]any, 3+len(e.Extra))
	for k, v := range e.Extra {
		body[k] = v
	}
	body["success"] = e.Success
	body["message"] = e.Message
	if e.Key != "" {
		body[e.Key] = e.Payload
	}
	return body
}

func (e Envelope[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{"data": e.Body()})
}
