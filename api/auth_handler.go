package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/joinhub/join-backend/database"
	"github.com/joinhub/join-backend/errs"
	"github.com/joinhub/join-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

type authHandler struct {
	responder Responder
	logger    zerolog.Logger
	userRepo  *database.UserRepo
	tokens    tokenManager
}

func newAuthHandler(userRepo *database.UserRepo, tokens tokenManager) authHandler {
	logger := log.With().Str("handlerName", "authHandler").Logger()

	return authHandler{
		responder: NewResponder(logger),
		logger:    logger,
		userRepo:  userRepo,
		tokens:    tokens,
	}
}

// signup registers a new user account.
func (h authHandler) signup() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var creds credentialsRequest
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
			h.responder.WriteError(w, errs.Malformed("signup request"))
			return
		}

		creds.Username = strings.TrimSpace(creds.Username)
		if err := requireNotBlank("username", creds.Username); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if len(creds.Password) < 8 {
			h.responder.WriteError(w, errs.NewValidationError("password", "password must be at least 8 characters"))
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), bcrypt.DefaultCost)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalError("could not hash password"))
			return
		}

		user := models.User{
			Username:     creds.Username,
			PasswordHash: string(hash),
		}
		if err := h.userRepo.Add(&user); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "user", err))
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, map[string]string{
			"id":       user.ID.String(),
			"username": user.Username,
		})
	}
}

// obtainToken exchanges a username and password for a bearer token.
func (h authHandler) obtainToken() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var creds credentialsRequest
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
			h.responder.WriteError(w, errs.Malformed("token request"))
			return
		}

		user, err := h.userRepo.FindByUsername(strings.TrimSpace(creds.Username))
		if err != nil {
			if errs.IsNotFound(err) {
				h.responder.WriteError(w, errs.NewInvalidCredentialsError())
				return
			}
			h.responder.WriteError(w, wrapDatabaseError("find", "user", err))
			return
		}

		if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(creds.Password)) != nil {
			h.responder.WriteError(w, errs.NewInvalidCredentialsError())
			return
		}

		token, err := h.tokens.Generate(user.ID)
		if err != nil {
			h.logger.Error().Err(err).Msg("Failed to sign token")
			h.responder.WriteError(w, errs.NewInternalError("could not issue token"))
			return
		}

		h.responder.WriteJSON(w, map[string]string{"token": token})
	}
}
