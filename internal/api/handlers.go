package api

import (
	"database/sql"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"msgtiers/internal/service/messaging"
	"msgtiers/internal/validate"
)

const serviceName = "Database Server"

// Handler wires the data-tier HTTP routes to the messaging service. Every
// handler re-validates required fields itself; the gateway is not trusted.
type Handler struct {
	messaging *messaging.Service
}

// NewHandler constructs a Handler instance.
func NewHandler(service *messaging.Service) *Handler {
	return &Handler{messaging: service}
}

// RegisterRoutes attaches all HTTP routes to the router.
func (h *Handler) RegisterRoutes(router *gin.Engine) {
	db := router.Group("/db")
	db.POST("/register", h.registerUser)
	db.POST("/login", h.loginUser)
	db.POST("/insert", h.insertMessage)
	db.GET("/fetch", h.fetchMessages)
	db.PUT("/update", h.updateMessage)
	db.DELETE("/delete", h.deleteMessage)
	db.GET("/health", h.health)
	db.GET("/test-connection", h.testConnection)
}

// internalError hides store failure detail from the client; the full error
// only goes to the local log.
func internalError(c *gin.Context, op string, err error) {
	log.Printf("[db] %s: %v", op, err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
}

type credentialsRequest struct {
	UserID   string `json:"user_id"`
	Password string `json:"password"`
}

func (h *Handler) registerUser(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	missing := validate.Missing([]string{"user_id", "password"}, map[string]any{
		"user_id":  req.UserID,
		"password": req.Password,
	})
	if len(missing) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": validate.MissingError(missing)})
		return
	}
	user, err := h.messaging.RegisterUser(c.Request.Context(), req.UserID, req.Password)
	if err != nil {
		if errors.Is(err, messaging.ErrUserExists) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "User already exists"})
			return
		}
		internalError(c, "register user", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"status":  "success",
		"user_id": user.UserID,
	})
}

func (h *Handler) loginUser(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	missing := validate.Missing([]string{"user_id", "password"}, map[string]any{
		"user_id":  req.UserID,
		"password": req.Password,
	})
	if len(missing) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": validate.MissingError(missing)})
		return
	}
	result, err := h.messaging.CheckLogin(c.Request.Context(), req.UserID, req.Password)
	if err != nil {
		internalError(c, "login user", err)
		return
	}
	// Informational result: both flags false for an unknown account so the
	// client can tell "no such account" from "wrong password".
	c.JSON(http.StatusOK, gin.H{
		"user_id":  result.UserExists,
		"password": result.PasswordMatches,
	})
}

type insertRequest struct {
	SenderID    string `json:"sender_id"`
	ReceiverID  string `json:"receiver_id"`
	MessageText string `json:"message_text"`
}

func (h *Handler) insertMessage(c *gin.Context) {
	var req insertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	missing := validate.Missing([]string{"sender_id", "receiver_id", "message_text"}, map[string]any{
		"sender_id":    req.SenderID,
		"receiver_id":  req.ReceiverID,
		"message_text": req.MessageText,
	})
	if len(missing) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": validate.MissingError(missing)})
		return
	}
	msg, err := h.messaging.InsertMessage(c.Request.Context(), req.SenderID, req.ReceiverID, req.MessageText)
	if err != nil {
		internalError(c, "insert message", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message_id": msg.MessageID,
		"status":     "success",
	})
}

func (h *Handler) fetchMessages(c *gin.Context) {
	senderID := c.Query("sender_id")
	receiverID := c.Query("receiver_id")
	missing := validate.Missing([]string{"sender_id", "receiver_id"}, map[string]any{
		"sender_id":   senderID,
		"receiver_id": receiverID,
	})
	if len(missing) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": validate.MissingError(missing)})
		return
	}
	messages, err := h.messaging.Conversation(c.Request.Context(), senderID, receiverID)
	if err != nil {
		internalError(c, "fetch messages", err)
		return
	}
	// An empty conversation is a successful empty list, not a 404.
	c.JSON(http.StatusOK, gin.H{
		"messages": messages,
		"status":   "success",
	})
}

type updateRequest struct {
	MessageID   int64  `json:"message_id"`
	SenderID    string `json:"sender_id"`
	MessageText string `json:"message_text"`
}

func (h *Handler) updateMessage(c *gin.Context) {
	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	missing := validate.Missing([]string{"message_id", "sender_id", "message_text"}, map[string]any{
		"message_id":   req.MessageID,
		"sender_id":    req.SenderID,
		"message_text": req.MessageText,
	})
	if len(missing) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": validate.MissingError(missing)})
		return
	}
	if err := h.messaging.UpdateMessage(c.Request.Context(), req.MessageID, req.SenderID, req.MessageText); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Opaque on purpose: does not reveal whether the id exists.
			c.JSON(http.StatusNotFound, gin.H{"error": "Message not found or sender mismatch"})
			return
		}
		internalError(c, "update message", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":     "success",
		"updated_id": req.MessageID,
	})
}

type deleteRequest struct {
	MessageID int64  `json:"message_id"`
	SenderID  string `json:"sender_id"`
}

func (h *Handler) deleteMessage(c *gin.Context) {
	var req deleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	missing := validate.Missing([]string{"message_id", "sender_id"}, map[string]any{
		"message_id": req.MessageID,
		"sender_id":  req.SenderID,
	})
	if len(missing) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": validate.MissingError(missing)})
		return
	}
	if err := h.messaging.DeleteMessage(c.Request.Context(), req.MessageID, req.SenderID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Message not found or sender mismatch"})
			return
		}
		internalError(c, "delete message", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":     "success",
		"deleted_id": req.MessageID,
	})
}

func (h *Handler) health(c *gin.Context) {
	ctx := c.Request.Context()
	if err := h.messaging.Ping(ctx); err != nil {
		log.Printf("[db] health ping: %v", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "unhealthy",
			"service": serviceName,
		})
		return
	}
	count, err := h.messaging.MessageCount(ctx)
	if err != nil {
		// Reachable but not fully functional: degraded rather than down.
		log.Printf("[db] health count: %v", err)
		c.JSON(http.StatusOK, gin.H{
			"status":  "degraded",
			"service": serviceName,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":        "healthy",
		"service":       serviceName,
		"message_count": count,
	})
}

func (h *Handler) testConnection(c *gin.Context) {
	version, count, err := h.messaging.Diagnostics(c.Request.Context())
	if err != nil {
		log.Printf("[db] test connection: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": "error",
			"error":  "connection test failed",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":        "success",
		"database":      h.messaging.Driver(),
		"version":       version,
		"message_count": count,
	})
}
