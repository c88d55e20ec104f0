package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/subflow/admin-client/internal/api"
	"github.com/subflow/admin-client/internal/notify"
	"github.com/subflow/admin-client/internal/tokenstore"
)

func TestLogin_ExtractsTokenFromAllShapes(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "nested data.accessToken", body: `{"data":{"accessToken":"tok-1","refreshToken":"ref-1"}}`},
		{name: "top-level accessToken", body: `{"accessToken":"tok-1","refreshToken":"ref-1"}`},
		{name: "legacy token", body: `{"token":"tok-1"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, http.MethodPost, r.Method)
				require.Equal(t, "/auth/login", r.URL.Path)

				var req map[string]string
				require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
				require.Equal(t, "admin@example.com", req["email"])
				require.Equal(t, "secret123", req["password"])

				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			ctx := context.Background()
			store := tokenstore.NewMemory()
			client := makeClient(server.URL, store, notify.Nop{})

			raw, err := client.Login(ctx, "admin@example.com", "secret123")
			require.NoError(t, err)
			assert.JSONEq(t, tt.body, string(raw))

			assert.Equal(t, "tok-1", client.Token())

			access, _, err := store.Load(ctx)
			require.NoError(t, err)
			assert.Equal(t, "tok-1", access)
		})
	}
}

func TestLogin_PersistsRefreshTokenWhenPresent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"data":{"accessToken":"tok-1","refreshToken":"ref-1"}}`))
	}))
	defer server.Close()

	ctx := context.Background()
	store := tokenstore.NewMemory()
	client := makeClient(server.URL, store, notify.Nop{})

	_, err := client.Login(ctx, "admin@example.com", "secret123")
	require.NoError(t, err)

	_, refresh, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ref-1", refresh)
}

func TestLogin_MissingAccessToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"data":{"user":"admin@example.com"}}`))
	}))
	defer server.Close()

	ctx := context.Background()
	store := tokenstore.NewMemory()
	notifier := &recordNotifier{}
	client := makeClient(server.URL, store, notifier)

	_, err := client.Login(ctx, "admin@example.com", "secret123")
	require.Error(t, err)
	assert.True(t, errors.Is(err, api.ErrMissingAccessToken))

	// Токен не должен попасть ни в память, ни в хранилище.
	assert.Empty(t, client.Token())
	access, refresh, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, access)
	assert.Empty(t, refresh)

	assert.Equal(t, []string{"Login failed"}, notifier.failures)
}

func TestLogin_TransportFailureNotifies(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close()

	notifier := &recordNotifier{}
	client := makeClient(server.URL, tokenstore.NewMemory(), notifier)

	_, err := client.Login(context.Background(), "admin@example.com", "secret123")
	require.Error(t, err)
	assert.Equal(t, []string{"Login failed"}, notifier.failures)
	assert.Empty(t, notifier.successes)
}

func TestForgotPassword_SendsEmail(t *testing.T) {
	var gotBody map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/forgot-password", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(`{"status":"OK"}`))
	}))
	defer server.Close()

	client := makeClient(server.URL, tokenstore.NewMemory(), notify.Nop{})

	_, err := client.ForgotPassword(context.Background(), "admin@example.com")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"email": "admin@example.com"}, gotBody)
}

func TestForgotPassword_FailureNotifies(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"unknown email"}`))
	}))
	defer server.Close()

	notifier := &recordNotifier{}
	client := makeClient(server.URL, tokenstore.NewMemory(), notifier)

	_, err := client.ForgotPassword(context.Background(), "nobody@example.com")
	require.Error(t, err)
	assert.Equal(t, []string{"Failed to send reset code"}, notifier.failures)
}

func TestVerifyOTP_ForwardsCode(t *testing.T) {
	var gotBody map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/verify-otp", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(`{"status":"OK"}`))
	}))
	defer server.Close()

	client := makeClient(server.URL, tokenstore.NewMemory(), notify.Nop{})

	_, err := client.VerifyOTP(context.Background(), "admin@example.com", "123456")
	require.NoError(t, err)
	assert.Equal(t, "123456", gotBody["otp"])
}

func TestVerifyOTP_FailureNotifies(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"message":"invalid code"}`))
	}))
	defer server.Close()

	notifier := &recordNotifier{}
	client := makeClient(server.URL, tokenstore.NewMemory(), notifier)

	_, err := client.VerifyOTP(context.Background(), "admin@example.com", "000000")
	require.Error(t, err)
	assert.Equal(t, []string{"Invalid OTP"}, notifier.failures)
}

func TestResetPassword_ForwardsAllFields(t *testing.T) {
	var gotBody map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/reset-password", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(`{"status":"OK"}`))
	}))
	defer server.Close()

	client := makeClient(server.URL, tokenstore.NewMemory(), notify.Nop{})

	_, err := client.ResetPassword(context.Background(), "admin@example.com", "newpass1", "newpass1")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"email":           "admin@example.com",
		"password":        "newpass1",
		"confirmPassword": "newpass1",
	}, gotBody)
}

func TestChangePassword_SuccessAndFailureNotifications(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		var gotBody map[string]string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/change-password", r.URL.Path)
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
			w.Write([]byte(`{"data":{"updated":true}}`))
		}))
		defer server.Close()

		notifier := &recordNotifier{}
		client := makeClient(server.URL, tokenstore.NewMemory(), notifier)

		raw, err := client.ChangePassword(context.Background(), "old123", "new456", "new456")
		require.NoError(t, err)
		assert.JSONEq(t, `{"updated":true}`, string(raw))
		assert.Equal(t, map[string]string{
			"currentPassword": "old123",
			"newPassword":     "new456",
			"confirmPassword": "new456",
		}, gotBody)
		assert.Equal(t, []string{"Password changed successfully"}, notifier.successes)
	})

	t.Run("failure", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"message":"wrong current password"}`))
		}))
		defer server.Close()

		notifier := &recordNotifier{}
		client := makeClient(server.URL, tokenstore.NewMemory(), notifier)

		_, err := client.ChangePassword(context.Background(), "bad", "new456", "new456")
		require.Error(t, err)
		assert.Equal(t, []string{"Failed to change password"}, notifier.failures)
		assert.Empty(t, notifier.successes)
	})
}
