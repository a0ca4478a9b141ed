// Package catalog holds the fixed set of franchises supported by the game.
package catalog

// Info describes a franchise for presentation purposes.
type Info struct {
	Name           string `json:"name"`
	Abbreviation   string `json:"abbreviation"`
	PrimaryColor   string `json:"primaryColor"`
	SecondaryColor string `json:"secondaryColor"`
	LogoPath       string `json:"logoPath"`
}

var teamInfo = map[string]Info{
	"Chennai Super Kings": {
		Name:           "Chennai Super Kings",
		Abbreviation:   "CSK",
		PrimaryColor:   "#FFFF3C",
		SecondaryColor: "#0081E9",
		LogoPath:       "static/team_logos/csk.png",
	},
	"Delhi Capitals": {
		Name:           "Delhi Capitals",
		Abbreviation:   "DC",
		PrimaryColor:   "#0078BC",
		SecondaryColor: "#EF1B23",
		LogoPath:       "static/team_logos/dc.png",
	},
	"Gujarat Titans": {
		Name:           "Gujarat Titans",
		Abbreviation:   "GT",
		PrimaryColor:   "#1B2133",
		SecondaryColor: "#B9B9B9",
		LogoPath:       "static/team_logos/gt.png",
	},
	"Kolkata Knight Riders": {
		Name:           "Kolkata Knight Riders",
		Abbreviation:   "KKR",
		PrimaryColor:   "#3A225D",
		SecondaryColor: "#F2C000",
		LogoPath:       "static/team_logos/kkr.png",
	},
	"Lucknow Super Giants": {
		Name:           "Lucknow Super Giants",
		Abbreviation:   "LSG",
		PrimaryColor:   "#A72056",
		SecondaryColor: "#FFDB3B",
		LogoPath:       "static/team_logos/lsg.png",
	},
	"Mumbai Indians": {
		Name:           "Mumbai Indians",
		Abbreviation:   "MI",
		PrimaryColor:   "#004BA0",
		SecondaryColor: "#D1AB3E",
		LogoPath:       "static/team_logos/mi.png",
	},
	"Punjab Kings": {
		Name:           "Punjab Kings",
		Abbreviation:   "PBKS",
		PrimaryColor:   "#D11D1B",
		SecondaryColor: "#FDB913",
		LogoPath:       "static/team_logos/pbks.png",
	},
	"Rajasthan Royals": {
		Name:           "Rajasthan Royals",
		Abbreviation:   "RR",
		PrimaryColor:   "#EA1A85",
		SecondaryColor: "#254AA5",
		LogoPath:       "static/team_logos/rr.png",
	},
	"Royal Challengers Bangalore": {
		Name:           "Royal Challengers Bangalore",
		Abbreviation:   "RCB",
		PrimaryColor:   "#2B2A29",
		SecondaryColor: "#EC1C24",
		LogoPath:       "static/team_logos/rcb.png",
	},
	"Sunrisers Hyderabad": {
		Name:           "Sunrisers Hyderabad",
		Abbreviation:   "SRH",
		PrimaryColor:   "#F26522",
		SecondaryColor: "#000000",
		LogoPath:       "static/team_logos/srh.png",
	},
}

var teamNames = []string{
	"Chennai Super Kings",
	"Delhi Capitals",
	"Gujarat Titans",
	"Kolkata Knight Riders",
	"Lucknow Super Giants",
	"Mumbai Indians",
	"Punjab Kings",
	"Rajasthan Royals",
	"Royal Challengers Bangalore",
	"Sunrisers Hyderabad",
}

// Teams returns all franchise names in a stable alphabetical order.
func Teams() []string {
	out := make([]string, len(teamNames))
	copy(out, teamNames)
	return out
}

// InfoFor returns presentation info for a franchise.
func InfoFor(team string) (Info, bool) {
	info, ok := teamInfo[team]
	return info, ok
}

// IsTeam reports whether the given name is a supported franchise.
func IsTeam(name string) bool {
	_, ok := teamInfo[name]
	return ok
}
