package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Abraxas-365/seeker/pkg/errx"
	"github.com/Abraxas-365/seeker/pkg/iam/auth"
	"github.com/Abraxas-365/seeker/pkg/kernel"
	"github.com/Abraxas-365/seeker/recruitment/profile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const goodToken = "good-token"

func newBackend(t *testing.T) *httptest.Server {
	t.Helper()
	authorized := func(w http.ResponseWriter, r *http.Request) bool {
		if r.Header.Get("Authorization") == "Bearer "+goodToken {
			return true
		}
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error": "Invalid or expired token",
			"code":  "AUTH.INVALID_TOKEN",
			"type":  errx.TypeUnauthorized,
		})
		return false
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/profile/me", func(w http.ResponseWriter, r *http.Request) {
		if !authorized(w, r) {
			return
		}
		_ = json.NewEncoder(w).Encode(profile.Profile{ID: "u1", Name: "Asha", Email: "asha@example.com", Role: kernel.RoleJobSeeker})
	})
	mux.HandleFunc("/candidate/u1", func(w http.ResponseWriter, r *http.Request) {
		if !authorized(w, r) {
			return
		}
		_, _ = w.Write([]byte(`{"id":"c1","user_id":"u1","name":"Asha","graduation_city":"Bengaluru","resume":"http://files/cv.pdf"}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestLoginShowLogout(t *testing.T) {
	srv := newBackend(t)
	common := []string{"--api-url", srv.URL, "--store-file", filepath.Join(t.TempDir(), "session.json"), "--redis-addr", ""}
	cli := func(args ...string) (string, error) {
		return runCLI(t, append(args, common...)...)
	}

	_, err := cli("show")
	assert.ErrorIs(t, err, errNotLoggedIn)

	_, err = cli("login", "--token", "wrong")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "login failed")

	_, err = cli("show")
	assert.ErrorIs(t, err, errNotLoggedIn)

	out, err := cli("login", "--token", goodToken)
	require.NoError(t, err)
	assert.Equal(t, "Logged in as Asha (jobseeker)\n", out)

	out, err = cli("show")
	require.NoError(t, err)
	assert.Contains(t, out, "Asha")
	assert.Contains(t, out, "Bengaluru")
	assert.Contains(t, out, "http://files/cv.pdf")
	assert.Contains(t, out, "Not provided")

	out, err = cli("logout")
	require.NoError(t, err)
	assert.Equal(t, "Logged out\n", out)

	_, err = cli("show")
	assert.ErrorIs(t, err, errNotLoggedIn)
}

func TestDevToken(t *testing.T) {
	out, err := runCLI(t, "dev-token", "--user", "u1", "--secret", "s3cret", "--role", "jobseeker", "--ttl", "1h")
	require.NoError(t, err)

	claims, err := auth.NewJWTService("s3cret", "seeker", time.Hour).ValidateAccessToken(strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, kernel.Identity{UserID: "u1", Role: kernel.RoleJobSeeker}, claims.Identity())

	_, err = runCLI(t, "dev-token", "--user", "u1", "--secret", "s3cret", "--role", "wizard")
	assert.Error(t, err)
}
