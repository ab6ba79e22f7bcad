package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/oscardash/internal/common"
	"github.com/dmitrijs2005/oscardash/internal/server/models"
	"github.com/gin-gonic/gin"
)

func (s *HTTPServer) handleRegister(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: msgInvalidRegistration, Errors: fieldErrors(err)})
		return
	}

	user, token, err := s.users.Register(c.Request.Context(), models.NewUser{
		UserName:  req.Username,
		Password:  req.Password,
		Birthdate: req.Birthdate,
		Email:     req.Email,
		Gender:    req.Gender,
		Country:   req.Country,
	})
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorAlreadyExists):
			c.JSON(http.StatusBadRequest, ErrorResponse{Message: msgUsernameExists})
		case errors.Is(err, common.ErrorValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Message: msgInvalidRegistration,
				Errors:  map[string]string{"birthdate": "invalid_date"},
			})
		default:
			s.internalError(c, msgRegistrationFailed, err)
		}
		return
	}

	s.setSessionCookie(c, token)
	c.JSON(http.StatusCreated, user)
}

func (s *HTTPServer) handleLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: msgInvalidLogin, Errors: fieldErrors(err)})
		return
	}

	user, token, err := s.users.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, ErrorResponse{Message: msgInvalidCredentials})
			return
		}
		s.internalError(c, msgLoginFailed, err)
		return
	}

	s.setSessionCookie(c, token)
	c.JSON(http.StatusOK, user)
}

func (s *HTTPServer) handleLogout(c *gin.Context) {
	token, _ := c.Cookie(common.SessionCookieName)

	if err := s.users.Logout(c.Request.Context(), token); err != nil {
		s.internalError(c, msgLogoutFailed, err)
		return
	}

	s.clearSessionCookie(c)
	c.JSON(http.StatusOK, MessageResponse{Message: msgLoggedOut})
}

func (s *HTTPServer) handleCurrentUser(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		abortWithMessage(c, http.StatusUnauthorized, msgNotAuthenticated)
		return
	}
	c.JSON(http.StatusOK, user)
}
