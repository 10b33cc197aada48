package extractor

import (
	"regexp"
	"strings"

	"github.com/user/company-analyzer/internal/entity"
	"github.com/user/company-analyzer/pkg/utils"
)

const (
	maxTeamMembers   = 5
	maxNameLength    = 50
	maxMissionLength = 300
)

var (
	foundingPattern = regexp.MustCompile(`(?i)(?:founded|established|since)\s*(?:in\s+)?(\d{4})`)
	missionPattern  = regexp.MustCompile(`(?i)(?:mission|vision|purpose|goal)[\s\S]{0,200}`)

	leadershipRoles = `((?i:CEO|CTO|CFO|President|Founder|Director))\b`
	personName      = `([A-Z][a-z]+ [A-Z][a-z]+)`

	// "Jane Doe, CEO"
	nameThenRole = regexp.MustCompile(personName + `,?\s*` + leadershipRoles)
	// "CEO: Jane Doe"
	roleThenName = regexp.MustCompile(leadershipRoles + `[\s:,-]*` + personName)
)

// FoundingYear returns the first four digit year after founded/established/since.
func FoundingYear(text string) string {
	if m := foundingPattern.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return ""
}

// MissionStatement returns the text window starting at the first
// mission/vision/purpose/goal keyword.
func MissionStatement(text string) string {
	m := missionPattern.FindString(text)
	return strings.TrimSpace(utils.Truncate(m, maxMissionLength))
}

// LeadershipTeam collects name and role pairs written either as
// "Name Name, ROLE" or "ROLE: Name Name".
func LeadershipTeam(text string) []entity.TeamMember {
	var team []entity.TeamMember
	add := func(name, role string) {
		name, role = strings.TrimSpace(name), strings.TrimSpace(role)
		if name == "" || role == "" || len(name) >= maxNameLength {
			return
		}
		team = append(team, entity.TeamMember{Name: name, Role: role})
	}

	for _, m := range nameThenRole.FindAllStringSubmatch(text, -1) {
		if len(team) == maxTeamMembers {
			return team
		}
		add(m[1], m[2])
	}
	for _, m := range roleThenName.FindAllStringSubmatch(text, -1) {
		if len(team) == maxTeamMembers {
			return team
		}
		add(m[2], m[1])
	}
	return team
}

// CompanyName picks the shortest heading under 50 characters.
func CompanyName(headings []string) string {
	name := ""
	for _, h := range headings {
		n := utils.CharCount(h)
		if n >= maxNameLength {
			continue
		}
		if name == "" || n < utils.CharCount(name) {
			name = h
		}
	}
	return name
}
