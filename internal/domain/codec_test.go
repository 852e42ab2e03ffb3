package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTeam_DecodesStringOrList(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Team
	}{
		{"list", `["Backend Developer","QA Engineer"]`, Team{"Backend Developer", "QA Engineer"}},
		{"single string", `"UI/UX Designer"`, Team{"UI/UX Designer"}},
		{"empty string", `""`, Team{}},
		{"null", `null`, Team{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var got Team
			require.NoError(t, json.Unmarshal([]byte(tc.in), &got))
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestTeam_RejectsOtherShapes(t *testing.T) {
	var got Team
	assert.Error(t, json.Unmarshal([]byte(`42`), &got))
}

func TestTeam_NilEncodesAsList(t *testing.T) {
	b, err := json.Marshal(struct {
		T Team `json:"t"`
	}{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"t":[]}`, string(b))
}

func TestParseTeam(t *testing.T) {
	assert.Equal(t, Team{"Alice", "Bob"}, ParseTeam(" Alice, ,Bob "))
	assert.Equal(t, Team{}, ParseTeam(""))
}

func TestDate_JSON(t *testing.T) {
	var d Date
	require.NoError(t, json.Unmarshal([]byte(`"2026-10-19"`), &d))
	assert.Equal(t, "2026-10-19", d.String())

	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2026-10-19"`, string(b))

	var zero Date
	require.NoError(t, json.Unmarshal([]byte(`""`), &zero))
	assert.True(t, zero.IsZero())

	assert.Error(t, json.Unmarshal([]byte(`"19/10/2026"`), &d))
}

func TestOnDevelopmentPatch_ApplyAndEncode(t *testing.T) {
	p := OnDevelopmentProject{
		Name:     "Storefront",
		Manager:  "Unassigned",
		Deadline: MustParseDate("2026-11-01"),
		Health:   HealthGreen,
		Priority: DevelopmentHigh,
		Details:  DevelopmentDetails{CurrentPhase: "Kick-off", TimeBudgeted: 100},
	}

	patch := OnDevelopmentPatch{
		Deadline: Ptr(MustParseDate("2026-12-15")),
		Details:  &DetailsPatch{TimeBudgeted: Ptr(240.0)},
	}
	patch.Apply(&p)

	assert.Equal(t, "2026-12-15", p.Deadline.String())
	assert.Equal(t, 240.0, p.Details.TimeBudgeted)
	assert.Equal(t, "Kick-off", p.Details.CurrentPhase, "untouched nested field survives")
	assert.Equal(t, "Storefront", p.Name)

	b, err := json.Marshal(patch)
	require.NoError(t, err)
	assert.JSONEq(t, `{"deadline":"2026-12-15","details":{"timeBudgeted":240}}`, string(b))
}

func TestExpensePatch_OnlyDescription(t *testing.T) {
	e := Expense{Category: "HOSTING", Description: "VPS", Amount: 20}
	ExpensePatch{Description: Ptr("VPS (annual)")}.Apply(&e)
	assert.Equal(t, "VPS (annual)", e.Description)
	assert.Equal(t, 20.0, e.Amount)
}
