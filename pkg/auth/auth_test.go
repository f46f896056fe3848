package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/Astemirdum/book-exchange/pkg/auth"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestVerifier_Verify(t *testing.T) {
	t.Parallel()
	v := auth.NewVerifier(auth.Config{Secret: "secret", Issuer: "bookswap"})
	userID := uuid.New()

	tests := []struct {
		name    string
		token   func() string
		wantErr error
		want    auth.Identity
	}{
		{
			name: "ok",
			token: func() string {
				tok, err := v.Issue(auth.Identity{UserID: userID, Role: auth.RoleModerator}, time.Hour)
				require.NoError(t, err)
				return tok
			},
			want: auth.Identity{UserID: userID, Role: auth.RoleModerator},
		},
		{
			name: "default role",
			token: func() string {
				tok, err := v.Issue(auth.Identity{UserID: userID}, time.Hour)
				require.NoError(t, err)
				return tok
			},
			want: auth.Identity{UserID: userID, Role: auth.RoleUser},
		},
		{
			name: "expired",
			token: func() string {
				tok, err := v.Issue(auth.Identity{UserID: userID}, -time.Minute)
				require.NoError(t, err)
				return tok
			},
			wantErr: auth.ErrExpiredToken,
		},
		{
			name: "wrong secret",
			token: func() string {
				other := auth.NewVerifier(auth.Config{Secret: "other", Issuer: "bookswap"})
				tok, err := other.Issue(auth.Identity{UserID: userID}, time.Hour)
				require.NoError(t, err)
				return tok
			},
			wantErr: auth.ErrInvalidToken,
		},
		{
			name:    "garbage",
			token:   func() string { return "not-a-jwt" },
			wantErr: auth.ErrInvalidToken,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := v.Verify(tt.token())
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestAuthContext(t *testing.T) {
	_, err := auth.FromContext(context.Background())
	require.ErrorIs(t, err, auth.ErrNoIdentity)

	id := auth.Identity{UserID: uuid.New(), Role: auth.RoleAdmin}
	got, err := auth.FromContext(auth.SetAuthContext(context.Background(), id))
	require.NoError(t, err)
	require.Equal(t, id, got)
	require.True(t, got.IsModerator())
}
