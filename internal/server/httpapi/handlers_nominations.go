package httpapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/oscardash/internal/common"
	"github.com/dmitrijs2005/oscardash/internal/server/models"
	"github.com/gin-gonic/gin"
)

func (r nominationRequest) toModel() models.UserNomination {
	return models.UserNomination{
		Category:          r.Category,
		Iteration:         r.Iteration,
		MovieName:         r.MovieName,
		MovieReleaseDate:  r.MovieReleaseDate,
		PersonName:        r.PersonName,
		PersonDateOfBirth: r.PersonDateOfBirth,
	}
}

func (s *HTTPServer) handleListNominations(c *gin.Context) {
	user, _ := currentUser(c)
	serveList(s, c, msgListNominationsFail, func(ctx context.Context) ([]models.UserNominationRow, error) {
		return s.nominations.List(ctx, user.UserName)
	})
}

func (s *HTTPServer) handleCreateNomination(c *gin.Context) {
	user, _ := currentUser(c)

	var req nominationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: msgInvalidNomination, Errors: fieldErrors(err)})
		return
	}

	created, err := s.nominations.Create(c.Request.Context(), user.UserName, req.toModel())
	if err != nil {
		switch statusForError(err) {
		case http.StatusBadRequest:
			c.JSON(http.StatusBadRequest, ErrorResponse{Message: msgInvalidNomination, Errors: map[string]string{"date": "invalid_date"}})
		case http.StatusNotFound:
			c.JSON(http.StatusNotFound, ErrorResponse{Message: msgMovieNotFound})
		case http.StatusConflict:
			c.JSON(http.StatusConflict, ErrorResponse{Message: msgNominationExists})
		default:
			s.internalError(c, msgCreateNominationFail, err)
		}
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (s *HTTPServer) handleDeleteNomination(c *gin.Context) {
	user, _ := currentUser(c)

	var req nominationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: msgMissingDeleteFields})
		return
	}

	deleted, err := s.nominations.Delete(c.Request.Context(), user.UserName, req.toModel())
	if err != nil {
		if errors.Is(err, common.ErrorValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Message: msgMissingDeleteFields})
			return
		}
		s.internalError(c, msgDeleteNominationFail, err)
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, ErrorResponse{Message: msgNominationNotFound})
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: msgNominationDeleted})
}
