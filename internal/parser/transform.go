package parser

import (
	messages "github.com/cucumber/messages/go/v21"
)

// Transform converts a grammar-engine GherkinDocument into an application
// Document. Scenarios nested in rules are flattened in declaration order.
func Transform(gd *messages.GherkinDocument) *Document {
	doc := &Document{}
	if gd == nil {
		return doc
	}

	for _, c := range gd.Comments {
		doc.Comments = append(doc.Comments, Comment{Text: c.Text, Line: line(c.Location)})
	}

	f := gd.Feature
	if f == nil {
		return doc
	}

	doc.Language = f.Language
	doc.Feature = FeatureHeader{
		Tags:        transformTags(f.Tags),
		Keyword:     f.Keyword,
		Name:        f.Name,
		Description: f.Description,
		Line:        line(f.Location),
	}

	for _, child := range f.Children {
		switch {
		case child.Background != nil:
			doc.Background = transformBackground(child.Background)
		case child.Scenario != nil:
			doc.ScenarioDefinitions = append(doc.ScenarioDefinitions, transformScenario(child.Scenario, ""))
		case child.Rule != nil:
			for _, rc := range child.Rule.Children {
				if rc.Scenario != nil {
					doc.ScenarioDefinitions = append(doc.ScenarioDefinitions, transformScenario(rc.Scenario, child.Rule.Name))
				}
			}
		}
	}

	return doc
}

func transformBackground(b *messages.Background) *Background {
	return &Background{
		Keyword:     b.Keyword,
		Name:        b.Name,
		Description: b.Description,
		Steps:       transformSteps(b.Steps),
		Line:        line(b.Location),
	}
}

func transformScenario(s *messages.Scenario, rule string) ScenarioDefinition {
	sd := ScenarioDefinition{
		Tags:        transformTags(s.Tags),
		Keyword:     s.Keyword,
		Name:        s.Name,
		Description: s.Description,
		Rule:        rule,
		Steps:       transformSteps(s.Steps),
		Line:        line(s.Location),
	}
	for _, ex := range s.Examples {
		e := Examples{
			Tags:    transformTags(ex.Tags),
			Keyword: ex.Keyword,
			Name:    ex.Name,
		}
		if ex.TableHeader != nil {
			e.HeaderRow = cells(ex.TableHeader)
		}
		for _, row := range ex.TableBody {
			e.Rows = append(e.Rows, cells(row))
		}
		sd.Examples = append(sd.Examples, e)
	}
	return sd
}

func transformSteps(steps []*messages.Step) []Step {
	var out []Step
	for _, s := range steps {
		step := Step{
			Keyword: s.Keyword,
			Text:    s.Text,
			Line:    line(s.Location),
		}
		if s.DocString != nil {
			step.Argument = &StepArgument{DocString: &DocString{
				MediaType: s.DocString.MediaType,
				Delimiter: s.DocString.Delimiter,
				Content:   s.DocString.Content,
			}}
		} else if s.DataTable != nil {
			dt := &DataTable{}
			for _, row := range s.DataTable.Rows {
				dt.Rows = append(dt.Rows, cells(row))
			}
			step.Argument = &StepArgument{DataTable: dt}
		}
		out = append(out, step)
	}
	return out
}

func transformTags(tags []*messages.Tag) []Tag {
	var out []Tag
	for _, t := range tags {
		out = append(out, Tag{Name: t.Name})
	}
	return out
}

func cells(row *messages.TableRow) []string {
	out := make([]string, 0, len(row.Cells))
	for _, c := range row.Cells {
		out = append(out, c.Value)
	}
	return out
}

func line(loc *messages.Location) int {
	if loc == nil {
		return 0
	}
	return int(loc.Line)
}
