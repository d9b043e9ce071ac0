package httpx

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"google.golang.org/api/googleapi"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type coded int

func (c coded) Error() string       { return "coded" }
func (c coded) HTTPStatusCode() int { return int(c) }

func TestStatusCode(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, 0},
		{"plain", errors.New("boom"), 0},
		{"coder", fmt.Errorf("wrap: %w", coded(429)), 429},
		{"googleapi", fmt.Errorf("wrap: %w", &googleapi.Error{Code: 503}), 503},
		{"grpc exhausted", status.Error(codes.ResourceExhausted, "quota"), http.StatusTooManyRequests},
		{"grpc internal", status.Error(codes.Internal, "x"), 0},
	}
	for _, tc := range cases {
		if got := StatusCode(tc.err); got != tc.want {
			t.Fatalf("%s: got=%d want=%d", tc.name, got, tc.want)
		}
	}
}
