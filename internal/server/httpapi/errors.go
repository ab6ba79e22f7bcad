package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/oscardash/internal/common"
	"github.com/gin-gonic/gin"
)

// Client-facing messages.
const (
	msgNotAuthenticated     = "Not authenticated"
	msgAuthCheckFailed      = "Failed to check authentication"
	msgInvalidRegistration  = "Invalid registration data"
	msgUsernameExists       = "Username already exists"
	msgRegistrationFailed   = "Registration failed"
	msgInvalidLogin         = "Invalid login data"
	msgInvalidCredentials   = "Invalid username or password"
	msgLoginFailed          = "Login failed"
	msgLoggedOut            = "Logged out successfully"
	msgLogoutFailed         = "Logout failed"
	msgCountryRequired      = "Country parameter is required"
	msgInvalidNomination    = "Invalid nomination data"
	msgMovieNotFound        = "Movie not found"
	msgNominationExists     = "Nomination already exists"
	msgMissingDeleteFields  = "Missing required fields for deletion"
	msgNominationNotFound   = "Nomination not found"
	msgNominationDeleted    = "Nomination deleted successfully"
	msgCreateNominationFail = "Failed to create user nomination"
	msgDeleteNominationFail = "Failed to delete user nomination"
	msgListNominationsFail  = "Failed to fetch user nominations"
)

// ErrorResponse is the body of every non-2xx answer.
type ErrorResponse struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// MessageResponse is the body of informational 2xx answers.
type MessageResponse struct {
	Message string `json:"message"`
}

// errorStatus maps service sentinels to HTTP status codes. Anything not
// listed is a 500.
var errorStatus = []struct {
	err    error
	status int
}{
	{common.ErrorValidation, http.StatusBadRequest},
	{common.ErrorUnauthorized, http.StatusUnauthorized},
	{common.ErrorInvalidCredentials, http.StatusUnauthorized},
	{common.ErrInvalidToken, http.StatusUnauthorized},
	{common.ErrorNotFound, http.StatusNotFound},
	{common.ErrMovieNotFound, http.StatusNotFound},
	{common.ErrorAlreadyExists, http.StatusConflict},
}

func statusForError(err error) int {
	for _, e := range errorStatus {
		if errors.Is(err, e.err) {
			return e.status
		}
	}
	return http.StatusInternalServerError
}

func abortWithMessage(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, ErrorResponse{Message: message})
}

// internalError logs err with the request id and answers 500 with message.
func (s *HTTPServer) internalError(c *gin.Context, message string, err error) {
	s.logger.Error(c.Request.Context(), message,
		"error", err,
		"path", c.Request.URL.Path,
		"request_id", c.GetString(requestIDKey),
	)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Message: message})
}
