// Package dto holds the JSON request and response shapes of the HTTP API.
package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// ErrorCode is a stable machine-readable error identifier.
type ErrorCode string

// Error codes.
const (
	UNAUTHENTICATED  ErrorCode = "UNAUTHENTICATED"
	FORBIDDEN        ErrorCode = "FORBIDDEN"
	NOTFOUND         ErrorCode = "NOT_FOUND"
	CONFLICT         ErrorCode = "CONFLICT"
	INVALIDOPERATION ErrorCode = "INVALID_OPERATION"
	INVALIDARGUMENT  ErrorCode = "INVALID_ARGUMENT"
	INTERNAL         ErrorCode = "INTERNAL"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody carries the code and a human readable message.
type ErrorBody struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// NewError builds an ErrorResponse.
func NewError(code ErrorCode, msg string) ErrorResponse {
	return ErrorResponse{Error: ErrorBody{Code: code, Message: msg}}
}

// Message is a plain acknowledgement body.
type Message struct {
	Message string `json:"message"`
}

const dateLayout = "2006-01-02"

// Date accepts either a calendar date or an RFC 3339 timestamp and renders
// as a calendar date.
type Date struct {
	time.Time
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	for _, layout := range []string{dateLayout, time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			d.Time = t.UTC()
			return nil
		}
	}
	return fmt.Errorf("date %q must look like %s", s, dateLayout)
}

// MarshalJSON implements json.Marshaler.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Time.UTC().Format(dateLayout))
}

// NullableString tells an absent field apart from an explicit null.
type NullableString struct {
	Set   bool
	Value *string
}

// UnmarshalJSON implements json.Unmarshaler; it only runs when the key is present.
func (n *NullableString) UnmarshalJSON(b []byte) error {
	n.Set = true
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		n.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	n.Value = &s
	return nil
}
