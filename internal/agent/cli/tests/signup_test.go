package tests

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/IvanChernomyrdin/go-authflow/internal/agent/cli"
	"github.com/IvanChernomyrdin/go-authflow/internal/shared/models"
)

func signupServer(t *testing.T, calls *atomic.Int32, want models.SignupRequest) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/signup", func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		var req models.SignupRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, want, req)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(models.MessageResponse{Msg: models.MsgRegistered})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestSignup_PasswordFlag(t *testing.T) {
	var calls atomic.Int32
	srv := signupServer(t, &calls, models.SignupRequest{Name: "Ana", Email: "ana@example.com", Password: "StrongPass123"})

	out, err := run(cli.NewSignupCmd(newApp(t, srv.URL)), "",
		"--name", "Ana", "--email", "ana@example.com", "--password", "StrongPass123", "--accept-terms")
	require.NoError(t, err)
	require.Contains(t, out, models.MsgRegistered)
	require.Equal(t, int32(1), calls.Load())
}

func TestSignup_PasswordStdin(t *testing.T) {
	var calls atomic.Int32
	srv := signupServer(t, &calls, models.SignupRequest{Name: "Ana", Email: "ana@example.com", Password: " spaced pw "})

	_, err := run(cli.NewSignupCmd(newApp(t, srv.URL)), " spaced pw \n",
		"--name", "Ana", "--email", "ana@example.com", "--password-stdin", "--accept-terms")
	require.NoError(t, err)
	require.Equal(t, int32(1), calls.Load())
}

func TestSignup_InteractivePrompt(t *testing.T) {
	var calls atomic.Int32
	srv := signupServer(t, &calls, models.SignupRequest{Name: "Ana", Email: "ana@example.com", Password: "secret1"})
	prompts := stubPasswords(t, "secret1", "secret1")

	_, err := run(cli.NewSignupCmd(newApp(t, srv.URL)), "",
		"--name", "Ana", "--email", "ana@example.com", "--accept-terms")
	require.NoError(t, err)
	require.Equal(t, []string{"Password: ", "Confirm password: "}, *prompts)
	require.Equal(t, int32(1), calls.Load())
}

// Клиентские проверки формы не пускают запрос на сервер
func TestSignup_FormChecks(t *testing.T) {
	tests := []struct {
		name    string
		answers []string
		args    []string
		wantErr string
	}{
		{
			name:    "passwords do not match",
			answers: []string{"secret1", "secret2"},
			args:    []string{"--name", "Ana", "--email", "ana@example.com", "--accept-terms"},
			wantErr: "Passwords do not match",
		},
		{
			name:    "terms not accepted",
			args:    []string{"--name", "Ana", "--email", "ana@example.com", "--password", "secret1"},
			wantErr: "You must accept the Terms and Conditions",
		},
		{
			name:    "short password",
			args:    []string{"--name", "Ana", "--email", "ana@example.com", "--password", "12345", "--accept-terms"},
			wantErr: "Password must be at least 6 characters",
		},
		{
			name:    "blank name",
			args:    []string{"--name", "   ", "--email", "ana@example.com", "--password", "secret1", "--accept-terms"},
			wantErr: "Name is required",
		},
		{
			name:    "no email",
			args:    []string{"--name", "Ana", "--password", "secret1", "--accept-terms"},
			wantErr: "Email is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			srv := signupServer(t, &calls, models.SignupRequest{})
			if tt.answers != nil {
				stubPasswords(t, tt.answers...)
			}

			_, err := run(cli.NewSignupCmd(newApp(t, srv.URL)), "", tt.args...)
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.wantErr)
			require.Zero(t, calls.Load())
		})
	}
}

func TestSignup_ServerRejects(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/signup", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(models.MessageResponse{Msg: models.MsgUserExists})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	_, err := run(cli.NewSignupCmd(newApp(t, srv.URL)), "",
		"--name", "Ana", "--email", "ana@example.com", "--password", "secret1", "--accept-terms")
	require.EqualError(t, err, models.MsgUserExists)
}

func TestSignup_PasswordFlagsMutuallyExclusive(t *testing.T) {
	_, err := run(cli.NewSignupCmd(newApp(t, "http://127.0.0.1:1")), "secret1\n",
		"--name", "Ana", "--email", "ana@example.com", "--password", "secret1", "--password-stdin", "--accept-terms")
	require.Error(t, err)
}
