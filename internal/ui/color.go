package ui

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	newStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	trkStyle     = lipgloss.NewStyle().Faint(true)
	delStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	errStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	idStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	keywordStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("5")).Bold(true)
	tagStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	headerStyle  = lipgloss.NewStyle().Bold(true)
)

var keywordPattern = regexp.MustCompile(`^(\s*)(Given |When |Then |And |But |\* |\S[^:]*:)`)

func NewLine(w io.Writer, path, scenario string) {
	fmt.Fprintln(w, newStyle.Render("new")+"  "+path+"  "+scenario)
}

func TrkLine(w io.Writer, path, scenario string) {
	fmt.Fprintln(w, trkStyle.Render("trk")+"  "+path+"  "+scenario)
}

func DelLine(w io.Writer, path, scenario string) {
	fmt.Fprintln(w, delStyle.Render("del")+"  "+path+"  "+scenario)
}

func OkLine(w io.Writer, path string, line int, scenario string) {
	fmt.Fprintf(w, "%s   %s:%d  %s\n", newStyle.Render("ok"), path, line, scenario)
}

func ErrLine(w io.Writer, msg string) {
	fmt.Fprintln(w, errStyle.Render("err")+"  "+msg)
}

func Warn(w io.Writer, msg string) {
	fmt.Fprintln(w, errStyle.Render("warn")+"  "+msg)
}

func SummaryLine(w io.Writer, count int) {
	fmt.Fprintf(w, "synced %d scenarios\n", count)
}

func CheckSummary(w io.Writer, scenarios, failures int) {
	fmt.Fprintf(w, "%d scenarios, %d failing blocks\n", scenarios, failures)
}

func BlockRow(w io.Writer, startLine, endLine int, blockType, title string) {
	if blockType == "" {
		blockType = "-"
	}
	fmt.Fprintf(w, "%-9s  %-10s  %s\n", fmt.Sprintf("%d-%d", startLine, endLine), blockType, title)
}

func ListRow(w io.Writer, id int64, fileName, name, status string, idWidth, fileWidth, nameWidth int) {
	tag := fmt.Sprintf("@ft:%d", id)
	fmt.Fprintf(w, "%s  %-*s  %-*s  %s\n",
		idStyle.Render(fmt.Sprintf("%-*s", idWidth, tag)),
		fileWidth, fileName,
		nameWidth, name,
		trkStyle.Render(status))
}

func StatusConfirm(w io.Writer, id int64, prev, status string) {
	if prev == "" {
		prev = "no-activity"
	}
	fmt.Fprintf(w, "@ft:%d  %s -> %s\n", id, prev, status)
}

func ShowHeader(w io.Writer, id int64, fileName, name string) {
	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("@ft:%d  %s", id, fileName))+"  "+name)
}

func ShowStatus(w io.Writer, status string) {
	fmt.Fprintln(w, "status: "+status)
}

// ShowGherkin prints Gherkin text with keywords and tags highlighted.
func ShowGherkin(w io.Writer, text string) {
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "@"):
			fmt.Fprintln(w, tagStyle.Render(line))
		case strings.HasPrefix(trimmed, "|"), strings.HasPrefix(trimmed, `"""`), strings.HasPrefix(trimmed, "```"):
			fmt.Fprintln(w, line)
		default:
			if m := keywordPattern.FindStringSubmatchIndex(line); m != nil {
				fmt.Fprintln(w, line[:m[3]]+keywordStyle.Render(line[m[4]:m[5]])+line[m[5]:])
				continue
			}
			fmt.Fprintln(w, line)
		}
	}
}
