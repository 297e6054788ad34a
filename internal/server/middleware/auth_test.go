package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubClaims struct{ id uuid.UUID }

func (c *stubClaims) GetRecruiterID() uuid.UUID { return c.id }

type stubValidator struct {
	id  uuid.UUID
	err error
}

func (v *stubValidator) ValidateToken(tokenString string) (RecruiterIDGetter, error) {
	if v.err != nil {
		return nil, v.err
	}
	return &stubClaims{id: v.id}, nil
}

func TestAuthPassesRecruiterID(t *testing.T) {
	recruiterID := uuid.New()
	mw := Auth(&stubValidator{id: recruiterID})

	var gotID uuid.UUID
	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := GetRecruiterID(r)
		require.NoError(t, err)
		gotID = id
	}))

	req := httptest.NewRequest("GET", "/jobs", nil)
	req.Header.Set("Authorization", "Bearer some-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, recruiterID, gotID)
}

func TestAuthRejects(t *testing.T) {
	cases := []struct {
		name   string
		header string
		err    error
	}{
		{name: "missing header", header: ""},
		{name: "not bearer", header: "Basic abc"},
		{name: "bearer without token", header: "Bearer "},
		{name: "invalid token", header: "Bearer bad", err: fmt.Errorf("invalid")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mw := Auth(&stubValidator{id: uuid.New(), err: tc.err})
			called := false
			handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
			}))

			req := httptest.NewRequest("GET", "/jobs", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.False(t, called)
		})
	}
}

func TestAuthCaseInsensitiveBearer(t *testing.T) {
	mw := Auth(&stubValidator{id: uuid.New()})
	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest("GET", "/jobs", nil)
	req.Header.Set("Authorization", "bearer some-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetRecruiterIDMissing(t *testing.T) {
	req := httptest.NewRequest("GET", "/jobs", nil)
	_, err := GetRecruiterID(req)
	assert.Error(t, err)
}
