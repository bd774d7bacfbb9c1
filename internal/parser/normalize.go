package parser

import (
	"regexp"
	"strings"

	gherkin "github.com/cucumber/gherkin/go/v26"
	messages "github.com/cucumber/messages/go/v21"

	"github.com/chriserin/ftmd/internal/markdown"
)

const DefaultLanguage = "en"

var (
	languagePattern     = regexp.MustCompile(`#\s*language\s*:(.+)`)
	parserErrorsPattern = regexp.MustCompile(`Parser errors`)
)

// Options configures a Normalizer.
type Options struct {
	DefaultLanguage string // dialect used when a block has no "# language:" line
	File            string // prefixed to syntax error messages
}

// Normalizer turns markdown blocks into single-scenario documents. It is
// safe for concurrent use; it holds no mutable state.
type Normalizer struct {
	opts     Options
	dialects gherkin.DialectProvider
}

// New returns a Normalizer reading feature keywords from dialects. A nil
// provider means the dialects built into the gherkin parser.
func New(opts Options, dialects gherkin.DialectProvider) *Normalizer {
	if opts.DefaultLanguage == "" {
		opts.DefaultLanguage = DefaultLanguage
	}
	if dialects == nil {
		dialects = gherkin.DialectsBuiltin()
	}
	return &Normalizer{opts: opts, dialects: dialects}
}

// Source is block content rewritten into a complete feature file.
type Source struct {
	Content      string
	Language     string
	FakeLanguage bool
	FakeName     bool
}

// Rewrite resolves the block's dialect and prepends the Feature line and
// the language directive when the block does not carry them.
func (n *Normalizer) Rewrite(block markdown.Block) (*Source, error) {
	content := block.Content

	language := n.opts.DefaultLanguage
	m := languagePattern.FindStringSubmatch(content)
	if m != nil {
		language = strings.TrimSpace(m[1])
	}

	dialect := n.dialects.GetDialect(language)
	if dialect == nil {
		return nil, newError(ErrUnknownDialect, "unknown language %q", language)
	}
	keywords := dialect.FeatureKeywords()

	src := &Source{Language: language}

	if !hasFeatureKeyword(keywords, content) {
		if !hasFeatureKeyword(keywords, block.Title) {
			return nil, newError(ErrMissingFeatureTitle, "title %q is not a feature definition", block.Title)
		}
		content = block.Title + "\n" + content
		src.FakeName = true
	}

	if m == nil {
		content = "# language: " + language + "\n" + content
		src.FakeLanguage = true
	}

	src.Content = content
	return src, nil
}

// Normalize parses block and returns one Document per scenario. Any
// failure aborts the whole block.
func (n *Normalizer) Normalize(block markdown.Block) ([]Document, error) {
	src, err := n.Rewrite(block)
	if err != nil {
		return nil, err
	}

	doc, err := n.parse(src)
	if err != nil {
		return nil, err
	}

	for _, sd := range doc.ScenarioDefinitions {
		if strings.TrimSpace(sd.Name) == "" {
			return nil, newError(ErrEmptyScenarioName, "scenario has no name")
		}
		if len(sd.Steps) == 0 && strings.TrimSpace(sd.Description) != "" {
			return nil, newError(ErrNoSteps, "scenario %q has no steps", sd.Name)
		}
	}

	docs := make([]Document, 0, len(doc.ScenarioDefinitions))
	for _, sd := range doc.ScenarioDefinitions {
		d := *doc
		d.ScenarioDefinitions = []ScenarioDefinition{sd}
		d.FakeLanguage = src.FakeLanguage
		d.FakeName = src.FakeName
		docs = append(docs, d)
	}
	return docs, nil
}

func (n *Normalizer) parse(src *Source) (*Document, error) {
	builder := gherkin.NewAstBuilder((&messages.Incrementing{}).NewId)
	p := gherkin.NewParser(builder)
	p.StopAtFirstError(false)

	scanner := gherkin.NewScanner(strings.NewReader(src.Content))
	matcher := gherkin.NewLanguageMatcher(n.dialects, src.Language)

	if err := p.Parse(scanner, matcher); err != nil {
		if !parserErrorsPattern.MatchString(err.Error()) {
			return nil, err
		}
		return nil, &SyntaxError{File: n.opts.File, Message: diagnosticLine(err.Error())}
	}

	return Transform(builder.GetGherkinDocument()), nil
}

func diagnosticLine(msg string) string {
	lines := strings.Split(msg, "\n")
	if len(lines) < 2 {
		return msg
	}
	return strings.TrimSpace(lines[1])
}

func hasFeatureKeyword(keywords []string, text string) bool {
	for _, kw := range keywords {
		re := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(strings.TrimSpace(kw)) + `\s*:`)
		if re.MatchString(text) {
			return true
		}
	}
	return false
}
