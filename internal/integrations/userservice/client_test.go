package userservice

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
)

func TestClient_GetCustomer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/internal/users/u-1":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id":"u-1","name":"Jane","email":"jane@example.com","phone":"+100"}`))
		case "/internal/users/broken":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, logger.NewNop())
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		customer, err := client.GetCustomer(ctx, "u-1")
		require.NoError(t, err)
		assert.Equal(t, "Jane", customer.Name)
		assert.Equal(t, "jane@example.com", customer.Email)
	})

	t.Run("not found degrades", func(t *testing.T) {
		_, err := client.GetCustomer(ctx, "u-2")
		assert.ErrorIs(t, err, ErrServiceDegraded)
	})

	t.Run("server error degrades", func(t *testing.T) {
		_, err := client.GetCustomer(ctx, "broken")
		assert.ErrorIs(t, err, ErrServiceDegraded)
	})
}

func TestClient_GetUser_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	_, err := NewClient(srv.URL, time.Second, logger.NewNop()).GetUser(context.Background(), "x")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestClient_NotConfigured(t *testing.T) {
	_, err := NewClient("", time.Second, logger.NewNop()).GetCustomer(context.Background(), "u-1")
	assert.ErrorIs(t, err, ErrServiceDegraded)
}
