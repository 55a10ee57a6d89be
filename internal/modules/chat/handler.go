package chat

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	jwtsvc "lawlink/internal/pkg/jwt"
	"lawlink/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Dev setting; production deployments put an origin check here.
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type Handler struct {
	service *Service
	hub     *Hub
	jwt     *jwtsvc.Service
}

func NewHandler(service *Service, hub *Hub, jwt *jwtsvc.Service) *Handler {
	return &Handler{
		service: service,
		hub:     hub,
		jwt:     jwt,
	}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/cases/:id/chat", h.GetMessages)
	rg.POST("/cases/:id/chat", h.SendMessage)
	rg.GET("/chat/conversations", h.ListConversations)
}

// RegisterWS registers the websocket endpoint on the root router: websocket
// clients cannot set an Authorization header, so the token travels in the
// query string and is validated here instead of in the middleware.
func (h *Handler) RegisterWS(r *gin.Engine) {
	r.GET("/ws/chat", h.HandleWebSocket)
}

func (h *Handler) SendMessage(c *gin.Context) {
	caseID, ok := pathCaseID(c)
	if !ok {
		return
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Message text is required")
		return
	}

	msg, err := h.service.SendMessage(c.Request.Context(), caseID, c.GetInt64("user_id"), req.Text)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"message": msg})
}

func (h *Handler) GetMessages(c *gin.Context) {
	caseID, ok := pathCaseID(c)
	if !ok {
		return
	}

	limit := 0
	if s := c.Query("limit"); s != "" {
		if v, err := strconv.Atoi(s); err == nil {
			limit = v
		}
	}

	msgs, err := h.service.GetMessages(c.Request.Context(), caseID, c.GetInt64("user_id"), limit)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"messages": msgs})
}

func (h *Handler) ListConversations(c *gin.Context) {
	convs, err := h.service.ListConversations(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list conversations")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"conversations": convs})
}

func (h *Handler) HandleWebSocket(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "token query parameter is required"})
		return
	}

	claims, err := h.jwt.ValidateToken(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
		return
	}
	userID := claims.UserID

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("websocket upgrade failed: %v", err)
		return
	}

	h.hub.Register(userID, conn)
	defer h.hub.Unregister(userID)

	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	})

	go pingLoop(conn)

	// Reads are only used to detect the peer going away; messages are sent
	// over the REST endpoint.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func pingLoop(conn *websocket.Conn) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
			return
		}
	}
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrCaseNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Case not found")
	case errors.Is(err, ErrNoLawyer):
		response.Error(c, http.StatusConflict, "NO_LAWYER", "Case has no assigned lawyer yet")
	case errors.Is(err, ErrNotParticipant):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "You are not a participant of this chat")
	case errors.Is(err, ErrEmptyContent):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Message text is required")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Chat operation failed")
	}
}

func pathCaseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid id")
		return 0, false
	}
	return id, true
}
