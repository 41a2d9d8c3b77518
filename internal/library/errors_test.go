package library

import (
	"errors"
	"fmt"
	"testing"
)

func TestDescribe(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	cases := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"network", &NetworkError{Op: "list books", Err: cause}, cause.Error()},
		{"server body", &ServerError{Op: "create book", StatusCode: 400, Body: " bad isbn \n"}, "bad isbn"},
		{"server empty body", &ServerError{Op: "delete book", StatusCode: 500}, "status 500"},
		{"wrapped", fmt.Errorf("outer: %w", &ServerError{StatusCode: 404, Body: "gone"}), "gone"},
		{"plain", errors.New("plain"), "plain"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Describe(tc.err); got != tc.want {
				t.Fatalf("Describe = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestErrorKinds(t *testing.T) {
	cause := errors.New("boom")
	net := fmt.Errorf("wrap: %w", &NetworkError{Op: "op", Err: cause})
	if !IsNetwork(net) || IsServer(net) {
		t.Fatalf("network error misclassified")
	}
	if !errors.Is(net, cause) {
		t.Fatalf("NetworkError should unwrap to its cause")
	}
	srv := &ServerError{Op: "op", StatusCode: 200, Err: cause}
	if !IsServer(srv) || IsNetwork(srv) {
		t.Fatalf("server error misclassified")
	}
	if !errors.Is(srv, cause) {
		t.Fatalf("ServerError should unwrap to its cause")
	}
	if srv.Detail() != "boom" {
		t.Fatalf("Detail = %q, want boom", srv.Detail())
	}
}
