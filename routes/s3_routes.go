package routes

import (
	"github.com/gorilla/mux"

	"kindred_server/controllers"
	"kindred_server/middlewares"
	"kindred_server/services"
)

// RegisterS3Routes sets up the presigned URL routes for profile photos
func RegisterS3Routes(r *mux.Router, s3Service *services.S3Service, gate *middlewares.AuthMiddleware) {
	controller := controllers.NewS3Controller(s3Service)

	uploadRouter := r.PathPrefix("/uploads").Subrouter()
	uploadRouter.HandleFunc("/upload-url", gate.RequireAuth(controller.GetUploadURL)).Methods("GET")
	uploadRouter.HandleFunc("/read-url", gate.RequireAuth(controller.GetReadURL)).Methods("GET")
}
