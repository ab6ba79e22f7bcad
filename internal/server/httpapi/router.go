package httpapi

import (
	"github.com/gin-gonic/gin"
)

// Router builds the gin engine with every route and middleware attached.
func (s *HTTPServer) Router() *gin.Engine {
	if s.opts.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestID())
	router.Use(requestLogger(s.logger))
	router.Use(s.metrics.Middleware())

	router.GET("/healthz", s.handleHealth)
	router.GET("/metrics", gin.WrapH(s.metrics.Handler()))

	api := router.Group("/api")
	{
		api.POST("/register", s.handleRegister)
		api.POST("/login", s.handleLogin)
		api.POST("/logout", s.handleLogout)

		api.GET("/dashboard", s.handleDashboard)
		api.GET("/top-nominated-movies", s.handleTopNominatedMovies)
		api.GET("/staff-oscars", s.handleStaffOscars)
		api.GET("/top-birth-countries", s.handleTopBirthCountries)
		api.GET("/staff-by-country", s.handleStaffByCountry)
		api.GET("/dream-team", s.handleDreamTeam)
		api.GET("/top-production-companies", s.handleTopProductionCompanies)
		api.GET("/non-english-movies", s.handleNonEnglishMovies)
		api.GET("/persons", s.handlePersons)
		api.GET("/movies", s.handleMovies)
	}

	authed := api.Group("")
	authed.Use(s.requireAuth())
	{
		authed.GET("/user", s.handleCurrentUser)
		authed.GET("/user-nominations", s.handleListNominations)
		authed.POST("/user-nominations", s.handleCreateNomination)
		authed.DELETE("/user-nominations", s.handleDeleteNomination)
	}

	return router
}
