package controllers

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"kindred_server/middlewares"
	"kindred_server/models"
	"kindred_server/services"
)

// UserController handles registration, profile reads/updates and the
// matching queries.
type UserController struct {
	UserService  *services.UserService
	MatchService *services.MatchService
	Auth         *services.AuthService
}

// NewUserController creates a new instance of UserController
func NewUserController(userService *services.UserService, matchService *services.MatchService, auth *services.AuthService) *UserController {
	return &UserController{UserService: userService, MatchService: matchService, Auth: auth}
}

// RegisterRequest mirrors the registration schema
type RegisterRequest struct {
	FirstName  string  `json:"firstName" validate:"required,alphanum,max=20"`
	LastName   string  `json:"lastName" validate:"required,alphanum,max=30"`
	ScreenName string  `json:"screenName" validate:"required,max=20"`
	Location   string  `json:"location" validate:"omitempty,max=30"`
	Username   string  `json:"username" validate:"required,min=3,max=30"`
	Password   string  `json:"password" validate:"required,min=7,max=72"`
	Latitude   float64 `json:"latitude" validate:"omitempty,min=-90,max=90"`
	Longitude  float64 `json:"longitude" validate:"omitempty,min=-180,max=180"`
}

// Register creates a new account and returns the public profile view
func (c *UserController) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := decodeTrimValidate(r, &req); err != nil {
		respondError(w, err)
		return
	}

	user := models.User{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		ScreenName: req.ScreenName,
		Location:   req.Location,
		Username:   req.Username,
		Latitude:   req.Latitude,
		Longitude:  req.Longitude,
	}

	created, err := c.UserService.Register(r.Context(), user, req.Password)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, created.Serialize())
}

// decodeTrimValidate applies the username/password trimming the schema
// specifies before validating lengths.
func decodeTrimValidate(r *http.Request, req *RegisterRequest) *models.AppError {
	if appErr := decodeAndValidate(r, req, http.StatusUnprocessableEntity); appErr != nil {
		return appErr
	}
	req.Username = strings.TrimSpace(req.Username)
	req.Password = strings.TrimSpace(req.Password)
	if len(req.Username) < 3 {
		return models.NewValidationError(`"username" fails the "min" constraint`, "username")
	}
	if len(req.Password) < 7 {
		return models.NewValidationError(`"password" fails the "min" constraint`, "password")
	}
	return nil
}

// GetSelf returns the caller's own profile, or one of the matching queries
// when its flag is set. The flags are mutually exclusive.
func (c *UserController) GetSelf(w http.ResponseWriter, r *http.Request) {
	claims, _ := middlewares.ClaimsFrom(r.Context())
	query := r.URL.Query()

	switch {
	case query.Get("interests") == "true":
		caller, err := c.UserService.GetUser(r.Context(), claims.User.ID)
		if err != nil {
			respondError(w, err)
			return
		}
		matches, err := c.MatchService.SharedInterestMatches(r.Context(), caller)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]interface{}{"matches": matches})

	case query.Get("nearby") == "true":
		caller, err := c.UserService.GetUser(r.Context(), claims.User.ID)
		if err != nil {
			respondError(w, err)
			return
		}
		nearby, err := c.MatchService.NearbyMatches(r.Context(), caller)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]interface{}{"users": nearby})

	case query.Get("other") == "true":
		caller, err := c.UserService.GetUser(r.Context(), claims.User.ID)
		if err != nil {
			respondError(w, err)
			return
		}
		interests, err := c.MatchService.OtherInterests(r.Context(), caller)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]interface{}{"interests": interests})

	default:
		view, err := c.UserService.GetSelfView(r.Context(), claims.User.ID)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, view)
	}
}

// GetByID returns another user's reduced profile
func (c *UserController) GetByID(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["id"]

	view, err := c.UserService.GetReducedView(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, view)
}

// UpdateRequest is the partial profile update payload. Field presence
// decides what gets overwritten; there are no explicit unset semantics.
type UpdateRequest struct {
	ID           string    `json:"id" validate:"required"`
	FirstName    *string   `json:"firstName" validate:"omitempty,alphanum,max=20"`
	LastName     *string   `json:"lastName" validate:"omitempty,alphanum,max=30"`
	ScreenName   *string   `json:"screenName" validate:"omitempty,max=20"`
	Location     *string   `json:"location" validate:"omitempty,max=30"`
	Password     *string   `json:"password" validate:"omitempty,min=7,max=72"`
	Latitude     *float64  `json:"latitude" validate:"omitempty,min=-90,max=90"`
	Longitude    *float64  `json:"longitude" validate:"omitempty,min=-180,max=180"`
	Photo        *string   `json:"photo"`
	BlockedUsers *[]string `json:"blockedUsers" validate:"omitempty,dive,uuid4"`
}

// Update applies a partial profile update. The path id and body id must
// match exactly.
func (c *UserController) Update(w http.ResponseWriter, r *http.Request) {
	pathID := mux.Vars(r)["id"]

	var req UpdateRequest
	if appErr := decodeAndValidate(r, &req, http.StatusUnprocessableEntity); appErr != nil {
		respondError(w, appErr)
		return
	}

	if req.ID != pathID {
		respondError(w, &models.AppError{
			Code:     http.StatusBadRequest,
			Reason:   models.ReasonValidation,
			Message:  "Request path id and request body id values must match",
			Location: "id",
		})
		return
	}

	updates := map[string]interface{}{}
	if req.FirstName != nil {
		updates["firstName"] = *req.FirstName
	}
	if req.LastName != nil {
		updates["lastName"] = *req.LastName
	}
	if req.ScreenName != nil {
		updates["screenName"] = *req.ScreenName
	}
	if req.Location != nil {
		updates["location"] = *req.Location
	}
	if req.Latitude != nil {
		updates["latitude"] = *req.Latitude
	}
	if req.Longitude != nil {
		updates["longitude"] = *req.Longitude
	}
	if req.Photo != nil {
		updates["photo"] = *req.Photo
	}
	if req.BlockedUsers != nil {
		updates["blockedUsers"] = *req.BlockedUsers
	}
	if req.Password != nil {
		password := strings.TrimSpace(*req.Password)
		if len(password) < 7 {
			respondError(w, models.NewValidationError(`"password" fails the "min" constraint`, "password"))
			return
		}
		hash, err := c.Auth.HashPassword(password)
		if err != nil {
			respondError(w, err)
			return
		}
		updates["password"] = hash
	}

	if len(updates) == 0 {
		respondError(w, models.NewValidationError("No updatable fields supplied", ""))
		return
	}

	updated, err := c.UserService.UpdateUser(r.Context(), pathID, updates)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, updated.Serialize())
}
