package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRender_Scenario(t *testing.T) {
	doc := Document{
		ScenarioDefinitions: []ScenarioDefinition{{
			Tags:    []Tag{{Name: "@smoke"}},
			Keyword: "Scenario",
			Name:    "User logs in",
			Steps: []Step{
				{Keyword: "Given ", Text: "a user"},
				{Keyword: "Then ", Text: "they see the dashboard"},
			},
		}},
	}
	assert.Equal(t, `@smoke
Scenario: User logs in
  Given a user
  Then they see the dashboard`, Render(doc))
}

func TestRender_BackgroundFirst(t *testing.T) {
	doc := Document{
		Background: &Background{
			Keyword: "Background",
			Steps:   []Step{{Keyword: "Given ", Text: "a running system"}},
		},
		ScenarioDefinitions: []ScenarioDefinition{{
			Keyword: "Scenario",
			Name:    "Ping",
			Steps:   []Step{{Keyword: "When ", Text: "I ping"}},
		}},
	}
	assert.Equal(t, `Background:
  Given a running system

Scenario: Ping
  When I ping`, Render(doc))
}

func TestRender_StepArguments(t *testing.T) {
	doc := Document{
		ScenarioDefinitions: []ScenarioDefinition{{
			Keyword: "Scenario",
			Name:    "Upload",
			Steps: []Step{
				{Keyword: "Given ", Text: "a file:", Argument: &StepArgument{DocString: &DocString{MediaType: "json", Content: "{}"}}},
				{Keyword: "And ", Text: "users:", Argument: &StepArgument{DataTable: &DataTable{Rows: [][]string{{"name"}, {"alice"}}}}},
			},
		}},
	}
	assert.Equal(t, `Scenario: Upload
  Given a file:
    """json
    {}
    """
  And users:
    | name |
    | alice |`, Render(doc))
}
