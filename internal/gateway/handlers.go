// Package gateway implements the public-facing tier. It checks only that
// required fields are present, forwards the request to the data service, and
// relays the downstream response verbatim. It holds no state and caches
// nothing.
package gateway

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"msgtiers/internal/validate"
)

// Handler maps each public route onto one data-service call.
type Handler struct {
	data *Client
}

// NewHandler constructs a Handler forwarding through the given client.
func NewHandler(client *Client) *Handler {
	return &Handler{data: client}
}

// RegisterRoutes attaches the public routes to the router.
func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.POST("/message", h.sendMessage)
	router.GET("/messages", h.fetchMessages)
	router.POST("/edit_message", h.editMessage)
	router.POST("/delete_message", h.deleteMessage)
	router.GET("/health", h.health)
}

// readBody pulls the raw request body and decodes it just enough for the
// presence check. The raw bytes are what gets forwarded, so the data service
// sees exactly what the client sent.
func readBody(c *gin.Context) ([]byte, map[string]any, bool) {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		log.Printf("[gateway] read body: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return nil, nil, false
	}
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return nil, nil, false
	}
	return raw, fields, true
}

// relay writes the downstream response through unchanged, or a 503 when the
// data service could not be reached at all.
func (h *Handler) relay(c *gin.Context, method, path string, query url.Values, body []byte) {
	status, respBody, err := h.data.Forward(c.Request.Context(), method, path, query, body)
	if err != nil {
		log.Printf("[gateway] data service unreachable: %v", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Database service unavailable"})
		return
	}
	c.Data(status, "application/json; charset=utf-8", respBody)
}

func (h *Handler) sendMessage(c *gin.Context) {
	raw, fields, ok := readBody(c)
	if !ok {
		return
	}
	missing := validate.Missing([]string{"sender_id", "receiver_id", "message_text"}, fields)
	if len(missing) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": validate.MissingError(missing)})
		return
	}
	h.relay(c, http.MethodPost, "/db/insert", nil, raw)
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
	query := url.Values{}
	query.Set("sender_id", senderID)
	query.Set("receiver_id", receiverID)
	h.relay(c, http.MethodGet, "/db/fetch", query, nil)
}

func (h *Handler) editMessage(c *gin.Context) {
	raw, fields, ok := readBody(c)
	if !ok {
		return
	}
	missing := validate.Missing([]string{"message_id", "sender_id", "message_text"}, fields)
	if len(missing) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": validate.MissingError(missing)})
		return
	}
	h.relay(c, http.MethodPut, "/db/update", nil, raw)
}

func (h *Handler) deleteMessage(c *gin.Context) {
	raw, fields, ok := readBody(c)
	if !ok {
		return
	}
	missing := validate.Missing([]string{"message_id", "sender_id"}, fields)
	if len(missing) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": validate.MissingError(missing)})
		return
	}
	h.relay(c, http.MethodDelete, "/db/delete", nil, raw)
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "API Gateway",
	})
}
