package net

import (
	"encoding/json"
	"net/http"

	perr "judolguard/internal/platform/errors"
)

// Wire is the JSON envelope of every API response. Data is set on success,
// Code and Error on failure
type Wire struct {
	StatusCode int            `json:"status_code"`
	Status     string         `json:"status"`
	Code       perr.ErrorCode `json:"code,omitempty"`
	Error      string         `json:"error,omitempty"`
	RequestID  string         `json:"request_id,omitempty"`
	Data       any            `json:"data,omitempty"`
}

// Reply builds a success envelope with status
func Reply(status int, data any, reqID string) Wire {
	return Wire{StatusCode: status, Status: http.StatusText(status), RequestID: reqID, Data: data}
}

// Error builds the envelope for err with the status its code maps to.
// A nil err is a plain 200
func Error(err error, reqID string) (int, Wire) {
	if err == nil {
		return http.StatusOK, Reply(http.StatusOK, nil, reqID)
	}
	status, wire := perr.HTTPStatus(err), perr.WireFrom(err)
	w := Reply(status, nil, reqID)
	w.Code, w.Error = wire.Code, wire.Message
	return status, w
}

// Write sends body as JSON with status
func Write(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
