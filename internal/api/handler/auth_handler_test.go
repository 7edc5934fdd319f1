package handler

import (
	"bytes"
	"customer-directory/internal/api/handler/dto"
	"customer-directory/internal/config"
	"customer-directory/internal/pkg/apperrors"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var logger = slog.New(slog.NewTextHandler(io.Discard, nil))

const testSecret = "test-jwt-secret-key"

func TestGenerateBearerToken(t *testing.T) {
	h := NewAuthHandler(config.AuthConfig{Enabled: true, JWTSecret: testSecret}, logger)

	t.Run("successfully generates token", func(t *testing.T) {
		body, _ := json.Marshal(dto.TokenRequest{Username: "testuser"})
		req := httptest.NewRequest(http.MethodPost, "/auth/token", bytes.NewReader(body))
		w := httptest.NewRecorder()

		h.GenerateBearerToken(w, req)

		resp := w.Result()
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var respBody dto.TokenResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&respBody))
		require.True(t, strings.HasPrefix(respBody.Token, "Bearer "))

		claims := jwt.MapClaims{}
		token, err := jwt.ParseWithClaims(strings.TrimPrefix(respBody.Token, "Bearer "), claims, func(tok *jwt.Token) (interface{}, error) {
			return []byte(testSecret), nil
		})
		require.NoError(t, err)
		assert.True(t, token.Valid)
		assert.Equal(t, "testuser", claims["sub"])
	})

	t.Run("fails with invalid request body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/auth/token", bytes.NewReader([]byte("invalid json")))
		w := httptest.NewRecorder()

		h.GenerateBearerToken(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		var respBody dto.ErrorResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&respBody))
		assert.Equal(t, apperrors.CodeBadRequest, respBody.Code)
		assert.Equal(t, "Request body was not valid JSON", respBody.Message)
	})

	t.Run("fails without username", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/auth/token", bytes.NewReader([]byte(`{}`)))
		w := httptest.NewRecorder()

		h.GenerateBearerToken(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		var respBody dto.ErrorResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&respBody))
		assert.Equal(t, "Username is required", respBody.Message)
	})
}

func TestRespondError_UnknownErrorIsInternal(t *testing.T) {
	w := httptest.NewRecorder()
	respondError(w, io.ErrUnexpectedEOF)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"code":"InternalServerError","message":"An unexpected error occurred."}`, w.Body.String())
}

func TestRespondError_Unauthorized(t *testing.T) {
	w := httptest.NewRecorder()
	respondError(w, apperrors.ErrUnauthorized)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"code":"Unauthorized","message":"Unauthorized"}`, w.Body.String())
}
