package stats

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/dmitrijs2005/oscardash/internal/server/models"
)

// dreamTeamRole names a dream-team slot and the category patterns (ILIKE,
// so matching is case-insensitive) whose wins count towards it.
type dreamTeamRole struct {
	Name     string
	Patterns []string
}

// DreamTeamRoles lists the slots in the order they are returned.
var DreamTeamRoles = []dreamTeamRole{
	{Name: "Director", Patterns: []string{"%Director%", "%Directing%"}},
	{Name: "Leading Actor", Patterns: []string{"%Actor in a Leading Role%", "Best Actor"}},
	{Name: "Leading Actress", Patterns: []string{"%Actress in a Leading Role%", "Best Actress"}},
	{Name: "Supporting Actor", Patterns: []string{"%Actor in a Supporting Role%"}},
	{Name: "Supporting Actress", Patterns: []string{"%Actress in a Supporting Role%"}},
	{Name: "Producer", Patterns: []string{"Best Picture", "%Production%", "Outstanding Production", "Outstanding Motion Picture"}},
	{Name: "Singer", Patterns: []string{"%Song%", "%Music%", "%Score%"}},
}

const notableWorksLimit = 3

// predicate renders the category filter of r against the nominations alias.
func (r dreamTeamRole) predicate(alias string) string {
	quoted := make([]string, len(r.Patterns))
	for i, p := range r.Patterns {
		quoted[i] = "'" + strings.ReplaceAll(p, "'", "''") + "'"
	}
	return fmt.Sprintf("%s.category ILIKE ANY (ARRAY[%s])", alias, strings.Join(quoted, ", "))
}

// query selects the living person with the most wins for r, along with the
// movies of up to three of those wins, latest ceremony first. Both the count
// and the notable works read the same person, nomination and movie join.
func (r dreamTeamRole) query() string {
	return fmt.Sprintf(`(
	SELECT p.name,
	       to_char(p.date_of_birth, 'YYYY-MM-DD') AS date_of_birth,
	       '%[1]s' AS role,
	       COUNT(*) AS oscars,
	       COALESCE((
	           SELECT json_agg(w.movie_name ORDER BY w.latest DESC)
	           FROM (
	               SELECT mw.name AS movie_name, MAX(nw.iteration) AS latest
	               FROM nominations nw
	               JOIN movies mw
	                 ON nw.movie_name = mw.name AND nw.movie_release_date = mw.release_date
	               WHERE nw.person_name = p.name
	                 AND nw.person_date_of_birth = p.date_of_birth
	                 AND nw.won
	                 AND %[3]s
	               GROUP BY mw.name
	               ORDER BY latest DESC
	               LIMIT %[4]d
	           ) w
	       ), '[]'::json) AS notable_works
	FROM persons p
	JOIN nominations n
	  ON p.name = n.person_name AND p.date_of_birth = n.person_date_of_birth
	JOIN movies m
	  ON n.movie_name = m.name AND n.movie_release_date = m.release_date
	WHERE p.death_date IS NULL
	  AND n.won
	  AND %[2]s
	GROUP BY p.name, p.date_of_birth
	ORDER BY oscars DESC
	LIMIT 1
)`, r.Name, r.predicate("n"), r.predicate("nw"), notableWorksLimit)
}

var dreamTeamQuery = buildDreamTeamQuery(DreamTeamRoles)

func buildDreamTeamQuery(roles []dreamTeamRole) string {
	parts := make([]string, len(roles))
	for i, r := range roles {
		parts[i] = r.query()
	}
	return strings.Join(parts, "\nUNION ALL\n")
}

func (r *PostgresRepository) DreamTeam(ctx context.Context) ([]models.DreamTeamMember, error) {
	members, err := queryList(ctx, r.db, dreamTeamQuery, func(rows *sql.Rows, m *models.DreamTeamMember) error {
		var works []byte
		if err := rows.Scan(&m.PersonName, &m.DateOfBirth, &m.Role, &m.Oscars, &works); err != nil {
			return err
		}
		if err := json.Unmarshal(works, &m.NotableWorks); err != nil {
			return fmt.Errorf("decode notable works: %w", err)
		}
		if m.NotableWorks == nil {
			m.NotableWorks = []string{}
		}
		if len(m.NotableWorks) > notableWorksLimit {
			m.NotableWorks = m.NotableWorks[:notableWorksLimit]
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return pickDreamTeam(members), nil
}

// pickDreamTeam keeps the member with the most wins per role and orders the
// result by DreamTeamRoles.
func pickDreamTeam(members []models.DreamTeamMember) []models.DreamTeamMember {
	best := make(map[string]models.DreamTeamMember, len(DreamTeamRoles))
	for _, m := range members {
		if cur, ok := best[m.Role]; !ok || cur.Oscars < m.Oscars {
			best[m.Role] = m
		}
	}

	order := make(map[string]int, len(DreamTeamRoles))
	for i, r := range DreamTeamRoles {
		order[r.Name] = i
	}

	team := make([]models.DreamTeamMember, 0, len(best))
	for _, m := range best {
		m.DeathDate = nil
		team = append(team, m)
	}
	sort.Slice(team, func(i, j int) bool {
		oi, iok := order[team[i].Role]
		oj, jok := order[team[j].Role]
		if iok != jok {
			return iok
		}
		if oi != oj {
			return oi < oj
		}
		return team[i].Role < team[j].Role
	})

	return team
}
