package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Astemirdum/book-exchange/pkg/auth"
	md "github.com/Astemirdum/book-exchange/pkg/middleware"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

type stubVerifier struct {
	id  auth.Identity
	err error
}

func (s stubVerifier) Verify(string) (auth.Identity, error) { return s.id, s.err }

func TestJwtAuthentication(t *testing.T) {
	t.Parallel()
	userID := uuid.New()
	tests := []struct {
		name         string
		header       string
		verifier     stubVerifier
		expectedCode int
	}{
		{name: "no header", expectedCode: http.StatusUnauthorized},
		{name: "not bearer", header: "Basic abc", expectedCode: http.StatusUnauthorized},
		{name: "expired", header: "Bearer x", verifier: stubVerifier{err: auth.ErrExpiredToken}, expectedCode: http.StatusUnauthorized},
		{name: "ok", header: "Bearer x", verifier: stubVerifier{id: auth.Identity{UserID: userID, Role: auth.RoleUser}}, expectedCode: http.StatusOK},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			e := echo.New()
			e.GET("/me", func(c echo.Context) error {
				id, err := auth.FromContext(c.Request().Context())
				if err != nil {
					return err
				}
				return c.String(http.StatusOK, id.UserID.String())
			}, md.JwtAuthentication(tt.verifier))

			r := httptest.NewRequest(http.MethodGet, "/me", http.NoBody)
			if tt.header != "" {
				r.Header.Set(md.AuthorizationHeader, tt.header)
			}
			w := httptest.NewRecorder()
			e.ServeHTTP(w, r)

			require.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedCode == http.StatusOK {
				require.Equal(t, userID.String(), w.Body.String())
			}
		})
	}
}
