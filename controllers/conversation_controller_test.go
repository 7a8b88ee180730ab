package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kindred_server/config"
	"kindred_server/middlewares"
	"kindred_server/models"
	"kindred_server/services"
)

func newConversationRouter(t *testing.T) (*mux.Router, string) {
	t.Helper()
	store := newFakeUserStore()
	auth := services.NewAuthService(config.Config{JWTSecret: "test-secret", TokenExpiry: time.Hour})
	gate := middlewares.NewAuthMiddleware(auth)
	controller := NewConversationController(&services.ConversationService{Dynamo: store}, &services.UserService{Dynamo: store, Auth: auth}, nil)

	r := mux.NewRouter()
	r.HandleFunc("/conversations", gate.RequireAuth(controller.Create)).Methods("POST")
	r.HandleFunc("/conversations/{id}/messages", gate.RequireAuth(controller.PostMessage)).Methods("POST")

	token, err := auth.IssueToken(&models.User{UserID: "user-a", Username: "alice"})
	require.NoError(t, err)
	return r, token
}

func TestCreateConversationInvalidRecipient(t *testing.T) {
	router, token := newConversationRouter(t)

	payload, _ := json.Marshal(map[string]string{"recipient": "not-a-uuid"})
	req := httptest.NewRequest("POST", "/conversations", bytes.NewReader(payload))
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var appErr models.AppError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &appErr))
	assert.Equal(t, models.ReasonValidation, appErr.Reason)
	assert.Equal(t, "recipient", appErr.Location)
}

func TestPostMessageEmptyText(t *testing.T) {
	router, token := newConversationRouter(t)

	payload, _ := json.Marshal(map[string]string{"text": ""})
	req := httptest.NewRequest("POST", "/conversations/some-id/messages", bytes.NewReader(payload))
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var appErr models.AppError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &appErr))
	assert.Equal(t, "text", appErr.Location)
}

func TestPostMessageUnknownConversationReturns404(t *testing.T) {
	router, token := newConversationRouter(t)

	payload, _ := json.Marshal(map[string]string{"text": "hello"})
	req := httptest.NewRequest("POST", "/conversations/missing-id/messages", bytes.NewReader(payload))
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Not Found", body["message"])
}
