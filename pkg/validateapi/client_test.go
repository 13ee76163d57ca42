package validateapi_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pchouse/atqr/pkg/validateapi"
)

func TestValidate(t *testing.T) {
	t.Parallel()

	t.Run("successful validation", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

			var req struct {
				QRCode string `json:"qrCode"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "A:123456789*B:999999990", req.QRCode)

			_ = json.NewEncoder(w).Encode(map[string]any{
				"status":      "OK",
				"message":     "valid",
				"fieldsError": nil,
			})
		}))
		defer srv.Close()

		client := validateapi.New(5 * time.Second)
		resp, err := client.Validate(context.Background(), srv.URL, "A:123456789*B:999999990")
		require.NoError(t, err)
		assert.True(t, resp.OK())
		assert.Equal(t, "valid", resp.Message)
		assert.Empty(t, resp.FieldsError)
	})

	t.Run("field errors carried through", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]any{
				"status":  "ERROR",
				"message": "invalid document",
				"fieldsError": []map[string]string{
					{"field": "A", "value": "issuer not registered"},
					{"field": "O", "value": "totals do not match"},
				},
			})
		}))
		defer srv.Close()

		client := validateapi.New(0)
		resp, err := client.Validate(context.Background(), srv.URL, "raw")
		require.NoError(t, err)
		assert.False(t, resp.OK())
		require.Len(t, resp.FieldsError, 2)
		assert.Equal(t, "A", resp.FieldsError[0].Field)
		assert.Equal(t, "issuer not registered", resp.FieldsError[0].Value)
	})

	t.Run("missing envelope fields", func(t *testing.T) {
		t.Parallel()

		for _, body := range []string{
			`{}`,
			`{"status": "OK"}`,
			`{"message": "ok"}`,
			``,
			`not json`,
		} {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(body))
			}))

			client := validateapi.New(0)
			resp, err := client.Validate(context.Background(), srv.URL, "raw")
			assert.Nil(t, resp, "body %q", body)
			assert.ErrorIs(t, err, validateapi.ErrMalformedResponse, "body %q", body)
			srv.Close()
		}
	})

	t.Run("http error status", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		client := validateapi.New(0)
		_, err := client.Validate(context.Background(), srv.URL, "raw")
		assert.ErrorIs(t, err, validateapi.ErrUnexpectedStatus)
	})

	t.Run("transport failure", func(t *testing.T) {
		t.Parallel()

		client := validateapi.New(time.Second)
		_, err := client.Validate(context.Background(), "http://127.0.0.1:1/validate", "raw")
		assert.ErrorIs(t, err, validateapi.ErrRequestFailed)
	})

	t.Run("empty url", func(t *testing.T) {
		t.Parallel()

		client := validateapi.New(0)
		_, err := client.Validate(context.Background(), "", "raw")
		assert.ErrorIs(t, err, validateapi.ErrInvalidURL)
	})

	t.Run("context cancellation", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			<-r.Context().Done()
		}))
		defer srv.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		client := validateapi.New(0)
		_, err := client.Validate(ctx, srv.URL, "raw")
		assert.ErrorIs(t, err, validateapi.ErrRequestFailed)
	})
}
