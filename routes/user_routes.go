package routes

import (
	"github.com/gorilla/mux"

	"kindred_server/controllers"
	"kindred_server/middlewares"
	"kindred_server/services"
)

// RegisterUserRoutes sets up registration, profile and matching routes
func RegisterUserRoutes(r *mux.Router, userService *services.UserService, matchService *services.MatchService, auth *services.AuthService, gate *middlewares.AuthMiddleware) {
	controller := controllers.NewUserController(userService, matchService, auth)

	userRouter := r.PathPrefix("/users").Subrouter()
	userRouter.HandleFunc("", controller.Register).Methods("POST")
	userRouter.HandleFunc("", gate.RequireAuth(controller.GetSelf)).Methods("GET")
	userRouter.HandleFunc("/{id}", gate.RequireAuth(controller.GetByID)).Methods("GET")
	userRouter.HandleFunc("/{id}", gate.RequireAuth(controller.Update)).Methods("PUT")
}
