package googleauth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestClient_GetUserDetails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/userinfo", r.URL.Path)
		switch r.URL.Query().Get("access_token") {
		case "good token":
			w.Write([]byte(`{"id":"123","email":"a@b.com","verified_email":true,"given_name":"Ada","family_name":"Lovelace"}`))
		default:
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":"invalid_token"}`))
		}
	}))
	defer server.Close()

	c := &Client{HttpClient: server.Client(), BaseUrl: server.URL}

	t.Run("valid token", func(t *testing.T) {
		details, err := c.GetUserDetails(context.Background(), "good token")
		require.NoError(t, err)
		require.Equal(t, "", cmp.Diff(&GetUserDetailsResponse{
			ID:            "123",
			Email:         "a@b.com",
			EmailVerified: true,
			FirstName:     "Ada",
			LastName:      "Lovelace",
		}, details))
	})

	t.Run("rejected token", func(t *testing.T) {
		_, err := c.GetUserDetails(context.Background(), "bad")
		require.ErrorContains(t, err, "invalid_token")
	})
}
