package stats

// FilterTeams returns the players whose team is in teams, preserving order.
// An empty selection means no restriction and returns every player.
func FilterTeams(players []Player, teams []string) []Player {
	if len(teams) == 0 {
		out := make([]Player, len(players))
		copy(out, players)
		return out
	}
	want := make(map[string]struct{}, len(teams))
	for _, t := range teams {
		want[t] = struct{}{}
	}
	out := make([]Player, 0, len(players))
	for _, p := range players {
		if _, ok := want[p.Team]; ok {
			out = append(out, p)
		}
	}
	return out
}

// DistinctTeams returns the team names of players in first-appearance order.
func DistinctTeams(players []Player) []string {
	seen := make(map[string]struct{})
	var teams []string
	for _, p := range players {
		if _, ok := seen[p.Team]; ok {
			continue
		}
		seen[p.Team] = struct{}{}
		teams = append(teams, p.Team)
	}
	return teams
}
