package parser

// Application AST. A Document produced by Normalize holds exactly one
// ScenarioDefinition.

type Document struct {
	Language            string
	Feature             FeatureHeader
	Background          *Background
	ScenarioDefinitions []ScenarioDefinition
	Comments            []Comment

	FakeLanguage bool // "# language:" line was synthesized
	FakeName     bool // block title was promoted to the Feature line
}

type FeatureHeader struct {
	Tags        []Tag
	Keyword     string
	Name        string
	Description string
	Line        int
}

type Background struct {
	Keyword     string
	Name        string
	Description string
	Steps       []Step
	Line        int
}

type ScenarioDefinition struct {
	Tags        []Tag
	Keyword     string // Scenario, Scenario Outline, Example...
	Name        string
	Description string
	Rule        string // enclosing Rule name, empty at feature level
	Steps       []Step
	Examples    []Examples
	Line        int // 1-based line of the scenario keyword in the parsed content
}

type Tag struct {
	Name string // e.g. "@smoke"
}

type Step struct {
	Keyword  string // keyword as written, including trailing space
	Text     string
	Argument *StepArgument
	Line     int
}

type StepArgument struct {
	DocString *DocString
	DataTable *DataTable
}

type DocString struct {
	MediaType string
	Delimiter string
	Content   string
}

type DataTable struct {
	Rows [][]string
}

type Examples struct {
	Tags      []Tag
	Keyword   string
	Name      string
	HeaderRow []string
	Rows      [][]string
}

type Comment struct {
	Text string
	Line int
}
