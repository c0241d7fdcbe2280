package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Error is a non-2xx API response together with its decoded payload.
// The server reports failures in one of three shapes: a {"detail": "..."}
// message, a field-error map like {"email": ["taken"]}, or something
// unrecognizable, in which case both Detail and Fields stay empty and
// callers fall back to their own generic message.
type Error struct {
	Status int
	Detail string
	Fields map[string][]string
}

func (e *Error) Error() string {
	if msg := e.Message(); msg != "" {
		return msg
	}
	return fmt.Sprintf("request failed: %s", http.StatusText(e.Status))
}

// Message returns the most specific user-facing text in the payload:
// detail first, then the non_field_errors list, then any field message.
// Empty when the payload carried nothing recognizable.
func (e *Error) Message() string {
	if e.Detail != "" {
		return e.Detail
	}
	if msg := e.FieldMessage("non_field_errors"); msg != "" {
		return msg
	}
	for _, msgs := range e.Fields {
		if len(msgs) > 0 {
			return msgs[0]
		}
	}
	return ""
}

// FieldMessage returns the first message recorded for the named field.
func (e *Error) FieldMessage(field string) string {
	if msgs := e.Fields[field]; len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}

func decodeError(status int, body []byte) error {
	e := &Error{Status: status, Fields: map[string][]string{}}
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return e
	}
	for key, raw := range payload {
		if key == "detail" || key == "error" {
			var s string
			if json.Unmarshal(raw, &s) == nil {
				e.Detail = s
			}
			continue
		}
		var list []string
		if json.Unmarshal(raw, &list) == nil {
			e.Fields[key] = list
			continue
		}
		var s string
		if json.Unmarshal(raw, &s) == nil {
			e.Fields[key] = []string{s}
		}
	}
	return e
}

// DecodeList unwraps a collection payload. List endpoints may answer with
// either a bare array or a paginated {"results": [...]} envelope; out sees
// a plain slice either way.
func DecodeList(raw []byte, out any) error {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var envelope struct {
			Results json.RawMessage `json:"results"`
		}
		if err := json.Unmarshal(trimmed, &envelope); err != nil {
			return err
		}
		if envelope.Results == nil {
			return errors.New("list response has no results field")
		}
		trimmed = envelope.Results
	}
	return json.Unmarshal(trimmed, out)
}
