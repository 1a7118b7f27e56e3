package topics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_ResolvesKnownTopics(t *testing.T) {
	c := Default()

	expected := map[string]string{
		"general":     "You are StudyAI, an intelligent learning assistant.",
		"programming": "You are StudyAI specializing in programming.",
		"math":        "You are StudyAI specializing in mathematics.",
		"science":     "You are StudyAI specializing in science.",
		"debug":       "You are StudyAI specializing in code debugging.",
		"study-tips":  "You are StudyAI specializing in study techniques.",
		"interview":   "You are StudyAI specializing in interview preparation.",
	}

	require.Equal(t, len(expected), c.Len())
	for id, prompt := range expected {
		got := c.Resolve(id)
		assert.Equal(t, id, got.ID)
		assert.Equal(t, prompt, got.SystemPrompt)
	}
}

func TestResolve_UnknownFallsBackToGeneral(t *testing.T) {
	c := Default()

	for _, id := range []string{"", "cooking", "MATH", "general "} {
		got := c.Resolve(id)
		assert.Equal(t, DefaultID, got.ID, "id %q", id)
	}
}

func TestIDs_PreserveOrder(t *testing.T) {
	assert.Equal(t,
		[]string{"general", "programming", "math", "science", "debug", "study-tips", "interview"},
		Default().IDs(),
	)
}

func TestAll_ReturnsCopy(t *testing.T) {
	c := Default()

	all := c.All()
	all[0].SystemPrompt = "tampered"

	assert.Equal(t, "You are StudyAI, an intelligent learning assistant.", c.Resolve("general").SystemPrompt)
}

func TestDisplayName(t *testing.T) {
	tests := map[string]string{
		"general":    "General",
		"study-tips": "Study tips",
		"a-b-c":      "A b-c",
		"":           "",
	}
	for id, want := range tests {
		assert.Equal(t, want, DisplayName(id))
	}
}

func TestNew_Validation(t *testing.T) {
	_, err := New([]Topic{{ID: "math"}})
	assert.Error(t, err, "general is required")

	_, err = New([]Topic{{ID: "general"}, {ID: "general"}})
	assert.Error(t, err, "duplicates are rejected")

	_, err = New([]Topic{{ID: "general"}, {ID: ""}})
	assert.Error(t, err, "empty ids are rejected")

	c, err := New([]Topic{{ID: "general", Name: "Everything"}})
	require.NoError(t, err)
	assert.Equal(t, "Everything", c.Resolve("x").Name)
}
