package markdown

import (
	"regexp"
	"strings"
)

const fence = "```"

var (
	titlePattern = regexp.MustCompile(`^#([^#].*)$`)
	fencePattern = regexp.MustCompile("^```(.*)$")
)

// Block is one fenced region of a markdown document.
type Block struct {
	Type      string // info-string of the opening fence, trimmed
	Title     string // nearest preceding level-1 heading, empty if none
	StartLine int    // 1-based line of the opening fence
	EndLine   int    // 1-based line of the closing fence
	Content   string // lines between the fences
}

// ExtractBlocks scans markdown line by line and returns every fenced block
// that is both opened and closed. A fence still open at end of input is
// dropped.
func ExtractBlocks(markdown string) []Block {
	var (
		blocks     []Block
		blockLines []string
		inBlock    bool
		startLine  int
		blockType  string
		title      string
	)

	for i, line := range strings.Split(markdown, "\n") {
		if inBlock {
			if line == fence {
				blocks = append(blocks, Block{
					Type:      blockType,
					Title:     title,
					StartLine: startLine,
					EndLine:   i + 1,
					Content:   strings.Join(blockLines, "\n"),
				})
				blockLines = nil
				blockType = ""
				inBlock = false
				continue
			}
			blockLines = append(blockLines, line)
			continue
		}

		if m := titlePattern.FindStringSubmatch(line); m != nil {
			title = strings.TrimSpace(m[1])
			continue
		}
		if m := fencePattern.FindStringSubmatch(line); m != nil {
			inBlock = true
			startLine = i + 1
			blockType = strings.TrimSpace(m[1])
		}
	}

	return blocks
}

// FilterBlocks keeps the blocks whose type is one of types. With no types
// every block is kept.
func FilterBlocks(blocks []Block, types ...string) []Block {
	if len(types) == 0 {
		return blocks
	}
	var out []Block
	for _, b := range blocks {
		for _, t := range types {
			if b.Type == t {
				out = append(out, b)
				break
			}
		}
	}
	return out
}
