package models

type TopNominatedMovie struct {
	MovieName   string `json:"movie_name"`
	ReleaseDate string `json:"release_date"`
	Category    string `json:"category"`
	Year        int    `json:"year"`
	Count       int64  `json:"count"`
}

type StaffOscarStats struct {
	PersonName    string `json:"person_name"`
	DateOfBirth   string `json:"date_of_birth"`
	Role          string `json:"role"`
	Nominations   int64  `json:"nominations"`
	Oscars        int64  `json:"oscars"`
	WonCategories string `json:"won_categories"`
}

type BirthCountry struct {
	Country string `json:"country"`
	Count   int64  `json:"count"`
}

type StaffByCountry struct {
	PersonName     string `json:"person_name"`
	DateOfBirth    string `json:"date_of_birth"`
	CountryOfBirth string `json:"country_of_birth"`
	Category       string `json:"category"`
	Nominations    int64  `json:"nominations"`
	Oscars         int64  `json:"oscars"`
}

// DreamTeamMember is the top living winner for one role. DeathDate is always
// nil for returned members; it is kept in the shape the client expects.
type DreamTeamMember struct {
	PersonName   string   `json:"person_name"`
	DateOfBirth  string   `json:"date_of_birth"`
	Role         string   `json:"role"`
	Oscars       int64    `json:"oscars"`
	DeathDate    *string  `json:"death_date"`
	NotableWorks []string `json:"notable_works"`
}

type ProductionCompany struct {
	PDCompany string `json:"pd_company"`
	Oscars    int64  `json:"oscars"`
}

type NonEnglishMovie struct {
	MovieName   string  `json:"movie_name"`
	ReleaseDate string  `json:"release_date"`
	Language    string  `json:"language"`
	Year        int     `json:"year"`
	Category    string  `json:"category"`
	PDCompany   string  `json:"pd_company"`
	Director    *string `json:"director"`
}

// PersonRef and MovieRef feed the selection lists of the add-nomination form.
type PersonRef struct {
	Name        string `json:"name"`
	DateOfBirth string `json:"date_of_birth"`
}

type MovieRef struct {
	Name        string `json:"name"`
	ReleaseDate string `json:"release_date"`
}

type RecentUserNomination struct {
	UserName   string `json:"username"`
	MovieName  string `json:"movie_name"`
	PersonName string `json:"person_name"`
	Category   string `json:"category"`
	Iteration  int    `json:"iteration"`
}

type CategoryCount struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

type RecentWinner struct {
	MovieName string `json:"movie_name"`
	Category  string `json:"category"`
	Iteration int    `json:"iteration"`
}

type DashboardStats struct {
	TotalNominations  int64                  `json:"totalNominations"`
	TotalWinners      int64                  `json:"totalWinners"`
	UserNominations   int64                  `json:"userNominations"`
	RecentNominations []RecentUserNomination `json:"recentNominations"`
	TopCategories     []CategoryCount        `json:"topCategories"`
	RecentWinners     []RecentWinner         `json:"recentWinners"`
}
