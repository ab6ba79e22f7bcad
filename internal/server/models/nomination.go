package models

// UserNomination is a user's personal pick. All seven fields together form
// its key.
type UserNomination struct {
	Category          string `json:"category"`
	Iteration         int    `json:"iteration"`
	UserName          string `json:"user_username"`
	MovieName         string `json:"movie_name"`
	MovieReleaseDate  string `json:"movie_release_date"`
	PersonName        string `json:"person_name"`
	PersonDateOfBirth string `json:"person_date_of_birth"`
}

// UserNominationRow is a listed pick joined to the person catalog.
// DateOfBirth is nil when the referenced person is not in the catalog.
type UserNominationRow struct {
	Category          string  `json:"category"`
	Iteration         int     `json:"iteration"`
	MovieName         string  `json:"movie_name"`
	MovieReleaseDate  string  `json:"movie_release_date"`
	PersonName        string  `json:"person_name"`
	PersonDateOfBirth string  `json:"person_date_of_birth"`
	DateOfBirth       *string `json:"date_of_birth"`
}
