package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/branchbuddy/branchbuddy/internal/shared"
)

func TestRespondErrorMapsDomainErrors(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{shared.ErrValidation, 400},
		{shared.ErrInvalidCredentials, 401},
		{shared.ErrUnauthorized, 401},
		{shared.ErrForbidden, 403},
		{shared.ErrNotFound, 404},
		{shared.ErrConflict, 409},
		{shared.ErrDependency, 409},
		{fmt.Errorf("%w: role with this name already exists", shared.ErrConflict), 409},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		RespondError(rec, tc.err)
		if rec.Code != tc.status {
			t.Fatalf("error %v: expected status %d, got %d", tc.err, tc.status, rec.Code)
		}
	}
}

func TestRespondErrorHidesInternalDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondError(rec, errors.New("pq: connection refused"))
	if rec.Code != 500 {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	var body ProblemDetail
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Detail != "" {
		t.Fatalf("expected internal detail hidden, got %q", body.Detail)
	}
}
