package socket_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/pixelbrief/pixelbrief-backend/internal/api/middleware"
	"github.com/pixelbrief/pixelbrief-backend/internal/socket"
	"github.com/pixelbrief/pixelbrief-backend/internal/types"
)

func TestHandshakeRequiresEngineIdentityClaims(t *testing.T) {
	gin.SetMode(gin.TestMode)

	hub := socket.NewHub()
	go hub.Run()
	h := socket.NewHandler(hub, "test-secret")

	r := gin.New()
	r.GET("/ws", h.HandleWebSocket)

	// No token at all.
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ws", nil))
	require.Equal(t, http.StatusUnauthorized, w.Code)

	// Validly signed token without a role claim is still rejected.
	claims := jwt.MapClaims{
		"sub": "user-1",
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	roleless, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ws?token="+roleless, nil))
	require.Equal(t, http.StatusUnauthorized, w.Code)

	// With proper sub and role claims the token clears auth; a plain HTTP
	// request then fails at the upgrade, not the token check.
	token, err := middleware.GenerateToken("test-secret", "user-1", types.RoleClient, 1)
	require.NoError(t, err)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ws?token="+token, nil))
	require.Equal(t, http.StatusBadRequest, w.Code)
}
