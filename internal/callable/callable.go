// Package callable implements the request/response contract used between the
// storefront client and the hosted backend functions: HTTP POST with a JSON
// {"data": ...} envelope, answered by {"result": ...} or {"error": ...}.
// Error statuses use the gRPC canonical code space, which is also the code
// space the original hosted-function runtime exposes to callers.
package callable

import (
	"encoding/json"
	"fmt"
	"net/http"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Request is the envelope the client sends.
type Request struct {
	Data json.RawMessage `json:"data"`
}

// Response is the envelope the backend answers with. Exactly one of Result
// and Error is set.
type Response struct {
	Result json.RawMessage `json:"result,omitempty"`
	Error  *ErrorBody      `json:"error,omitempty"`
}

// ErrorBody carries a canonical status name (e.g. "UNAUTHENTICATED") and a
// user-presentable message.
type ErrorBody struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func (e *ErrorBody) Error() string {
	return fmt.Sprintf("%s: %s", e.Status, e.Message)
}

// Code maps the wire status name back to a codes.Code. Unknown names map to
// codes.Unknown.
func (e *ErrorBody) Code() codes.Code {
	var c codes.Code
	if err := c.UnmarshalJSON([]byte(`"` + e.Status + `"`)); err != nil {
		return codes.Unknown
	}
	return c
}

// codeNames covers the statuses this backend actually emits.
var codeNames = map[codes.Code]string{
	codes.OK:               "OK",
	codes.InvalidArgument:  "INVALID_ARGUMENT",
	codes.NotFound:         "NOT_FOUND",
	codes.AlreadyExists:    "ALREADY_EXISTS",
	codes.PermissionDenied: "PERMISSION_DENIED",
	codes.Unauthenticated:  "UNAUTHENTICATED",
	codes.Unavailable:      "UNAVAILABLE",
	codes.Internal:         "INTERNAL",
}

// CodeName renders c in the wire (UPPER_SNAKE) form.
func CodeName(c codes.Code) string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}

func httpStatus(c codes.Code) int {
	switch c {
	case codes.InvalidArgument:
		return http.StatusBadRequest
	case codes.NotFound:
		return http.StatusNotFound
	case codes.AlreadyExists:
		return http.StatusConflict
	case codes.PermissionDenied:
		return http.StatusForbidden
	case codes.Unauthenticated:
		return http.StatusUnauthorized
	case codes.Unavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// DecodeData unmarshals the request envelope's data payload into v.
func DecodeData(r *http.Request, v any) error {
	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return fmt.Errorf("decoding request envelope: %w", err)
	}
	if len(req.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(req.Data, v); err != nil {
		return fmt.Errorf("decoding request data: %w", err)
	}
	return nil
}

// WriteResult marshals v into the result envelope.
func WriteResult(w http.ResponseWriter, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		WriteStatus(w, status.New(codes.Internal, "internal error"))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(Response{Result: raw})
}

// WriteStatus writes an error envelope with the HTTP status matching the
// canonical code.
func WriteStatus(w http.ResponseWriter, st *status.Status) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatus(st.Code()))
	_ = json.NewEncoder(w).Encode(Response{
		Error: &ErrorBody{Status: CodeName(st.Code()), Message: st.Message()},
	})
}
