// Package roster holds per-franchise squad lists used to validate results.
package roster

// Roster is the playing squad of one franchise, grouped by role.
type Roster struct {
	Team        string   `json:"team"`
	Batsmen     []string `json:"batsmen"`
	Bowlers     []string `json:"bowlers"`
	AllRounders []string `json:"allRounders"`
}

// Contains reports whether the named cricketer appears anywhere in the squad.
func (r Roster) Contains(name string) bool {
	for _, group := range [][]string{r.Batsmen, r.Bowlers, r.AllRounders} {
		for _, member := range group {
			if member == name {
				return true
			}
		}
	}
	return false
}

// IsEmpty reports whether no squad members are known.
func (r Roster) IsEmpty() bool {
	return len(r.Batsmen)+len(r.Bowlers)+len(r.AllRounders) == 0
}
