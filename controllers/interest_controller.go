package controllers

import (
	"net/http"

	"github.com/gorilla/mux"

	"kindred_server/middlewares"
	"kindred_server/services"
)

// InterestController handles the interest catalog and the attach/detach
// workflow.
type InterestController struct {
	InterestService *services.InterestService
}

// NewInterestController creates a new instance of InterestController
func NewInterestController(interestService *services.InterestService) *InterestController {
	return &InterestController{InterestService: interestService}
}

// List returns the six most recently created catalog entries
func (c *InterestController) List(w http.ResponseWriter, r *http.Request) {
	interests, err := c.InterestService.ListRecent(r.Context(), 6)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"interests": interests})
}

// AddInterestRequest carries a Wikipedia search result being added
type AddInterestRequest struct {
	WikiPageID string `json:"wikiPageId" validate:"required,alphanum,max=30"`
	Name       string `json:"name" validate:"required,max=50"`
}

// Add attaches an interest to the authenticated user, creating the catalog
// entry if this wikiPageId has never been added before.
func (c *InterestController) Add(w http.ResponseWriter, r *http.Request) {
	claims, _ := middlewares.ClaimsFrom(r.Context())

	var req AddInterestRequest
	if appErr := decodeAndValidate(r, &req, http.StatusUnprocessableEntity); appErr != nil {
		respondError(w, appErr)
		return
	}

	interest, err := c.InterestService.AddInterest(r.Context(), claims.User.ID, req.WikiPageID, req.Name)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, interest)
}

// Remove detaches an interest from the authenticated user. The catalog
// entry is retained.
func (c *InterestController) Remove(w http.ResponseWriter, r *http.Request) {
	claims, _ := middlewares.ClaimsFrom(r.Context())
	interestID := mux.Vars(r)["id"]

	if err := c.InterestService.RemoveInterest(r.Context(), claims.User.ID, interestID); err != nil {
		respondError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
