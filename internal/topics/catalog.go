// Package topics holds the fixed set of chat topics and their system prompts.
package topics

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

const DefaultID = "general"

type Topic struct {
	ID           string
	Name         string
	Description  string
	SystemPrompt string
}

// Catalog is an immutable, ordered topic lookup. It is safe for concurrent use.
type Catalog struct {
	topics []Topic
	byID   map[string]Topic
}

var defaultTopics = []Topic{
	{ID: "general", Description: "General learning", SystemPrompt: "You are StudyAI, an intelligent learning assistant."},
	{ID: "programming", Description: "Programming concepts", SystemPrompt: "You are StudyAI specializing in programming."},
	{ID: "math", Description: "Mathematics", SystemPrompt: "You are StudyAI specializing in mathematics."},
	{ID: "science", Description: "Science", SystemPrompt: "You are StudyAI specializing in science."},
	{ID: "debug", Description: "Debugging code", SystemPrompt: "You are StudyAI specializing in code debugging."},
	{ID: "study-tips", Description: "Study techniques", SystemPrompt: "You are StudyAI specializing in study techniques."},
	{ID: "interview", Description: "Interview preparation", SystemPrompt: "You are StudyAI specializing in interview preparation."},
}

// Default returns the built-in StudyAI catalog.
func Default() *Catalog {
	c, err := New(defaultTopics)
	if err != nil {
		panic(err)
	}
	return c
}

// New builds a catalog from topics in display order. It must contain the
// "general" topic, and ids must be unique and non-empty.
func New(topics []Topic) (*Catalog, error) {
	c := &Catalog{
		topics: make([]Topic, 0, len(topics)),
		byID:   make(map[string]Topic, len(topics)),
	}

	for _, t := range topics {
		if t.ID == "" {
			return nil, fmt.Errorf("topic with empty id")
		}
		if _, dup := c.byID[t.ID]; dup {
			return nil, fmt.Errorf("duplicate topic id %q", t.ID)
		}
		if t.Name == "" {
			t.Name = DisplayName(t.ID)
		}
		c.topics = append(c.topics, t)
		c.byID[t.ID] = t
	}

	if _, ok := c.byID[DefaultID]; !ok {
		return nil, fmt.Errorf("catalog is missing the %q topic", DefaultID)
	}
	return c, nil
}

// Resolve returns the topic for id, or the general topic when id is unknown.
func (c *Catalog) Resolve(id string) Topic {
	if t, ok := c.byID[id]; ok {
		return t
	}
	return c.byID[DefaultID]
}

// All returns a copy of the topics in catalog order.
func (c *Catalog) All() []Topic {
	out := make([]Topic, len(c.topics))
	copy(out, c.topics)
	return out
}

func (c *Catalog) IDs() []string {
	return lo.Map(c.topics, func(t Topic, _ int) string { return t.ID })
}

func (c *Catalog) Len() int { return len(c.topics) }

// DisplayName upper-cases the first letter of id and turns its first hyphen
// into a space: "study-tips" becomes "Study tips".
func DisplayName(id string) string {
	if id == "" {
		return ""
	}
	name := strings.ToUpper(id[:1]) + id[1:]
	return strings.Replace(name, "-", " ", 1)
}
