// ============================================
// FILE: internal/socket/handler.go
// ============================================
package socket

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/pixelbrief/pixelbrief-backend/internal/types"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Origin is enforced by the CORS layer on the API routes; the
		// upgrade itself accepts any origin.
		return true
	},
}

// Handler upgrades authenticated HTTP requests into hub connections.
type Handler struct {
	Hub       *Hub
	JWTSecret string
}

func NewHandler(hub *Hub, jwtSecret string) *Handler {
	return &Handler{
		Hub:       hub,
		JWTSecret: jwtSecret,
	}
}

// HandleWebSocket authenticates the handshake and hands the connection over
// to the hub. The token arrives in the `token` query parameter because the
// browser WebSocket API cannot set headers; a Bearer header works as a
// fallback for non-browser clients. The token must carry the same sub and
// role claims the API auth middleware requires.
func (h *Handler) HandleWebSocket(c *gin.Context) {
	tokenString := c.Query("token")
	if tokenString == "" {
		if header := c.GetHeader("Authorization"); strings.HasPrefix(header, "Bearer ") {
			tokenString = strings.TrimPrefix(header, "Bearer ")
		}
	}
	if tokenString == "" {
		log.Println("❌ [WebSocket] Handshake without token")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Token required"})
		return
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(h.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		log.Printf("❌ [WebSocket] Rejected handshake: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
		return
	}
	if exp, ok := claims["exp"].(float64); ok && time.Now().Unix() > int64(exp) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return
	}

	userID, _ := claims["sub"].(string)
	role, _ := claims["role"].(string)
	if userID == "" || !types.IsValidRole(role) {
		log.Println("❌ [WebSocket] Token missing sub/role claims")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("❌ [WebSocket] Upgrade error: %v", err)
		return
	}

	log.Printf("✅ [WebSocket] Connected: user=%s role=%s", userID, role)

	client := NewClient(h.Hub, userID, role, conn)
	h.Hub.Register(client)

	// Every connection sits in its personal room so notifications and
	// counts reach it without an explicit join.
	h.Hub.JoinRoom(client, "user:"+userID)

	go client.WritePump()
	go client.ReadPump()
}

// NewClient builds an unregistered client for a connection.
func NewClient(hub *Hub, userID, role string, conn *websocket.Conn) *Client {
	return &Client{
		ID:       uuid.New().String(),
		UserID:   userID,
		Role:     role,
		Conn:     conn,
		Hub:      hub,
		Send:     make(chan []byte, 256),
		Rooms:    make(map[string]bool),
		lastPing: time.Now(),
	}
}
