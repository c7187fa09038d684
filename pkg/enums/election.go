package enums

import "fmt"

// Election identifies one of the tracked historical elections.
type Election string

const (
	Election2020State   Election = "v20state"
	Election2021Town    Election = "v21town"
	Election2021Primary Election = "v21primary"
	Election2022General Election = "v22general"
	Election2023Town    Election = "v23town"
)

// AllElections lists the tracked elections in display order. Participation
// summaries always report every entry of this list, even with zero counts.
var AllElections = []Election{
	Election2020State,
	Election2021Town,
	Election2021Primary,
	Election2022General,
	Election2023Town,
}

var electionLabels = map[Election]string{
	Election2020State:   "2020 State",
	Election2021Town:    "2021 Town",
	Election2021Primary: "2021 Primary",
	Election2022General: "2022 General",
	Election2023Town:    "2023 Town",
}

// Label returns the human-readable name used on charts.
func (e Election) Label() string {
	if label, ok := electionLabels[e]; ok {
		return label
	}
	return string(e)
}

// Column returns the voter table column holding the participation flag.
func (e Election) Column() string {
	return string(e)
}

// IsValid reports whether the value names a tracked election.
func (e Election) IsValid() bool {
	_, ok := electionLabels[e]
	return ok
}

// ParseElection converts raw input into an Election.
func ParseElection(value string) (Election, error) {
	candidate := Election(value)
	if !candidate.IsValid() {
		return "", fmt.Errorf("invalid election %q", value)
	}
	return candidate, nil
}
