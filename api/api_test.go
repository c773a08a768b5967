package api

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/joinhub/join-backend/database"
	"github.com/joinhub/join-backend/models"
	"github.com/joinhub/join-backend/policy"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestAPI wires the full route table over an in-memory database. The
// throttle is disabled unless a test supplies its own.
func newTestAPI(t *testing.T, throttle *policy.LunchBreakThrottle) (http.Handler, database.Database, tokenManager) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.Exec("PRAGMA foreign_keys = ON").Error)
	require.NoError(t, database.Migrate(db))

	d := database.New(db)
	tokens := newTokenManager("test-secret")
	handlers := initializeHandlers(d, tokens)
	auth := newAuthMiddleware(tokens)

	if throttle == nil {
		throttle = &policy.LunchBreakThrottle{Enabled: false}
	}

	router := chi.NewRouter()
	setupRoutes(router, handlers, auth, throttle, nil)

	return router, d, tokens
}

// signupTestUser provisions a user straight through the repository and
// returns the account together with a valid bearer token.
func signupTestUser(t *testing.T, d database.Database, tokens tokenManager, username string) (*models.User, string) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	user := models.User{Username: username, PasswordHash: string(hash)}
	require.NoError(t, d.UserRepo().Add(&user))

	token, err := tokens.Generate(user.ID)
	require.NoError(t, err)

	return &user, token
}
