package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Team is a list of role, skill or member labels. Older documents stored a
// single label as a bare string; decoding accepts both shapes and encoding
// always produces a list.
type Team []string

// ParseTeam splits a comma-separated label list, dropping blanks.
func ParseTeam(s string) Team {
	team := Team{}
	for _, part := range strings.Split(s, ",") {
		if label := strings.TrimSpace(part); label != "" {
			team = append(team, label)
		}
	}
	return team
}

func (t Team) String() string {
	return strings.Join(t, ", ")
}

func (t Team) MarshalJSON() ([]byte, error) {
	if t == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(t))
}

func (t *Team) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*t = Team{}
		return nil
	}
	var single string
	if err := json.Unmarshal(b, &single); err == nil {
		if single == "" {
			*t = Team{}
		} else {
			*t = Team{single}
		}
		return nil
	}
	var many []string
	if err := json.Unmarshal(b, &many); err != nil {
		return fmt.Errorf("team must be a string or a list of strings: %w", err)
	}
	*t = Team(many)
	return nil
}
