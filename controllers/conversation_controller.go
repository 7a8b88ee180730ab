package controllers

import (
	"net/http"

	socketio "github.com/googollee/go-socket.io"
	"github.com/gorilla/mux"

	"kindred_server/middlewares"
	"kindred_server/services"
)

// ConversationController handles conversations and the messages inside them
type ConversationController struct {
	ConversationService *services.ConversationService
	UserService         *services.UserService
	Socket              *socketio.Server
}

// NewConversationController creates a new instance of ConversationController
func NewConversationController(conversationService *services.ConversationService, userService *services.UserService, socket *socketio.Server) *ConversationController {
	return &ConversationController{
		ConversationService: conversationService,
		UserService:         userService,
		Socket:              socket,
	}
}

// List returns all conversations the caller takes part in
func (c *ConversationController) List(w http.ResponseWriter, r *http.Request) {
	claims, _ := middlewares.ClaimsFrom(r.Context())

	caller, err := c.UserService.GetUser(r.Context(), claims.User.ID)
	if err != nil {
		respondError(w, err)
		return
	}

	conversations, err := c.ConversationService.ListConversations(r.Context(), caller)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"conversations": conversations})
}

// Get fetches a single conversation by id
func (c *ConversationController) Get(w http.ResponseWriter, r *http.Request) {
	claims, _ := middlewares.ClaimsFrom(r.Context())
	conversationID := mux.Vars(r)["id"]

	caller, err := c.UserService.GetUser(r.Context(), claims.User.ID)
	if err != nil {
		respondError(w, err)
		return
	}

	view, err := c.ConversationService.GetConversation(r.Context(), caller, conversationID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, view)
}

// CreateConversationRequest names the other participant
type CreateConversationRequest struct {
	Recipient string `json:"recipient" validate:"required,uuid4"`
}

// Create starts a conversation between the caller and a recipient
func (c *ConversationController) Create(w http.ResponseWriter, r *http.Request) {
	claims, _ := middlewares.ClaimsFrom(r.Context())

	var req CreateConversationRequest
	if appErr := decodeAndValidate(r, &req, http.StatusUnprocessableEntity); appErr != nil {
		respondError(w, appErr)
		return
	}

	conversation, err := c.ConversationService.CreateConversation(r.Context(), claims.User.ID, req.Recipient)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, conversation)
}

// PostMessageRequest is the message payload
type PostMessageRequest struct {
	Text string `json:"text" validate:"required"`
}

// PostMessage appends a message to an existing conversation and broadcasts
// it to connected clients in the conversation's room.
func (c *ConversationController) PostMessage(w http.ResponseWriter, r *http.Request) {
	claims, _ := middlewares.ClaimsFrom(r.Context())
	conversationID := mux.Vars(r)["id"]

	var req PostMessageRequest
	if appErr := decodeAndValidate(r, &req, http.StatusUnprocessableEntity); appErr != nil {
		respondError(w, appErr)
		return
	}

	message, err := c.ConversationService.PostMessage(r.Context(), claims.User.ID, conversationID, req.Text)
	if err != nil {
		respondError(w, err)
		return
	}

	if c.Socket != nil {
		c.Socket.BroadcastToRoom("/", conversationID, "newMessage", message)
	}

	respondJSON(w, http.StatusCreated, message)
}
