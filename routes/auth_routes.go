package routes

import (
	"github.com/gorilla/mux"

	"kindred_server/controllers"
	"kindred_server/middlewares"
	"kindred_server/services"
)

// RegisterAuthRoutes sets up the login and token refresh routes
func RegisterAuthRoutes(r *mux.Router, userService *services.UserService, auth *services.AuthService, gate *middlewares.AuthMiddleware) {
	controller := controllers.NewAuthController(userService, auth)

	authRouter := r.PathPrefix("/auth").Subrouter()
	authRouter.HandleFunc("/login", controller.Login).Methods("POST")
	authRouter.HandleFunc("/refresh", gate.RequireAuth(controller.Refresh)).Methods("POST")
}
