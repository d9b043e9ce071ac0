package httpx

import (
	"errors"
	"net/http"

	"google.golang.org/api/googleapi"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type HTTPStatusCoder interface {
	HTTPStatusCode() int
}

// StatusCode digs an upstream HTTP status out of err, or returns 0.
// gRPC codes are mapped to their HTTP equivalents for the ones we act on.
func StatusCode(err error) int {
	if err == nil {
		return 0
	}
	var sc HTTPStatusCoder
	if errors.As(err, &sc) {
		if code := sc.HTTPStatusCode(); code != 0 {
			return code
		}
	}
	var gerr *googleapi.Error
	if errors.As(err, &gerr) && gerr.Code != 0 {
		return gerr.Code
	}
	if st, ok := status.FromError(err); ok && st != nil {
		switch st.Code() {
		case codes.ResourceExhausted:
			return http.StatusTooManyRequests
		case codes.Unauthenticated:
			return http.StatusUnauthorized
		case codes.PermissionDenied:
			return http.StatusForbidden
		case codes.InvalidArgument:
			return http.StatusBadRequest
		case codes.NotFound:
			return http.StatusNotFound
		case codes.Unavailable:
			return http.StatusServiceUnavailable
		}
	}
	return 0
}

func IsSuccess(code int) bool {
	return code >= 200 && code <= 299
}
