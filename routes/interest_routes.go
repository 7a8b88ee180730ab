package routes

import (
	"github.com/gorilla/mux"

	"kindred_server/controllers"
	"kindred_server/middlewares"
	"kindred_server/services"
)

// RegisterInterestRoutes sets up the interest catalog routes
func RegisterInterestRoutes(r *mux.Router, interestService *services.InterestService, gate *middlewares.AuthMiddleware) {
	controller := controllers.NewInterestController(interestService)

	interestRouter := r.PathPrefix("/interests").Subrouter()
	interestRouter.HandleFunc("", controller.List).Methods("GET")
	interestRouter.HandleFunc("", gate.RequireAuth(controller.Add)).Methods("POST")
	interestRouter.HandleFunc("/{id}", gate.RequireAuth(controller.Remove)).Methods("DELETE")
}
