package parser

import "strings"

// Render writes the background and scenario of doc back as Gherkin text,
// indented the way .feature files usually are.
func Render(doc Document) string {
	var b strings.Builder

	if bg := doc.Background; bg != nil {
		b.WriteString(header(bg.Keyword, bg.Name) + "\n")
		writeSteps(&b, bg.Steps)
	}

	for i, sd := range doc.ScenarioDefinitions {
		if doc.Background != nil || i > 0 {
			b.WriteString("\n")
		}
		if len(sd.Tags) > 0 {
			names := make([]string, 0, len(sd.Tags))
			for _, t := range sd.Tags {
				names = append(names, t.Name)
			}
			b.WriteString(strings.Join(names, " ") + "\n")
		}
		b.WriteString(header(sd.Keyword, sd.Name) + "\n")
		if d := strings.TrimSpace(sd.Description); d != "" {
			b.WriteString("  " + d + "\n")
		}
		writeSteps(&b, sd.Steps)
		for _, ex := range sd.Examples {
			b.WriteString("\n  " + header(ex.Keyword, ex.Name) + "\n")
			if ex.HeaderRow != nil {
				writeRow(&b, "    ", ex.HeaderRow)
			}
			for _, row := range ex.Rows {
				writeRow(&b, "    ", row)
			}
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

func writeSteps(b *strings.Builder, steps []Step) {
	for _, s := range steps {
		b.WriteString("  " + strings.TrimSpace(s.Keyword) + " " + s.Text + "\n")
		if s.Argument == nil {
			continue
		}
		if ds := s.Argument.DocString; ds != nil {
			delim := ds.Delimiter
			if delim == "" {
				delim = `"""`
			}
			b.WriteString("    " + delim + ds.MediaType + "\n")
			for _, l := range strings.Split(ds.Content, "\n") {
				b.WriteString("    " + l + "\n")
			}
			b.WriteString("    " + delim + "\n")
		}
		if dt := s.Argument.DataTable; dt != nil {
			for _, row := range dt.Rows {
				writeRow(b, "    ", row)
			}
		}
	}
}

func writeRow(b *strings.Builder, indent string, cells []string) {
	b.WriteString(indent + "| " + strings.Join(cells, " | ") + " |\n")
}

func header(keyword, name string) string {
	if name == "" {
		return keyword + ":"
	}
	return keyword + ": " + name
}
