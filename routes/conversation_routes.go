package routes

import (
	socketio "github.com/googollee/go-socket.io"
	"github.com/gorilla/mux"

	"kindred_server/controllers"
	"kindred_server/middlewares"
	"kindred_server/services"
)

// RegisterConversationRoutes sets up conversation and message routes
func RegisterConversationRoutes(r *mux.Router, conversationService *services.ConversationService, userService *services.UserService, socket *socketio.Server, gate *middlewares.AuthMiddleware) {
	controller := controllers.NewConversationController(conversationService, userService, socket)

	conversationRouter := r.PathPrefix("/conversations").Subrouter()
	conversationRouter.HandleFunc("", gate.RequireAuth(controller.List)).Methods("GET")
	conversationRouter.HandleFunc("", gate.RequireAuth(controller.Create)).Methods("POST")
	conversationRouter.HandleFunc("/{id}", gate.RequireAuth(controller.Get)).Methods("GET")
	conversationRouter.HandleFunc("/{id}/messages", gate.RequireAuth(controller.PostMessage)).Methods("POST")
}
