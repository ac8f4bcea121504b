package falagard

import (
	"strings"
	"unicode"

	"github.com/1broseidon/cegui/internal/font"
	"github.com/1broseidon/cegui/internal/geom"
	"github.com/1broseidon/cegui/internal/render"
)

// textLine is one formatted line of a text component. X is the offset from
// the left of the area; SpaceExtra is added after every space or tab.
type textLine struct {
	Text       string
	X          float32
	SpaceExtra float32
}

// formatText splits text into paragraphs, wraps them to width when hf
// wraps, and aligns every resulting line.
func formatText(f font.Font, text string, width float32, hf TextHorzFormat) []textLine {
	var out []textLine
	for _, para := range strings.Split(text, "\n") {
		lines := []string{para}
		if hf.wraps() {
			lines = wrapWords(f, para, width)
		}
		for i, l := range lines {
			align := hf.line()
			// The last line of a paragraph is never stretched.
			if hf == TextWordWrapJustified && i == len(lines)-1 {
				align = TextLeftAligned
			}
			out = append(out, alignLine(f, l, width, align))
		}
	}
	return out
}

// wrapWords breaks para into lines no wider than width. A word carries the
// whitespace in front of it; that whitespace is dropped when the word
// starts a new line. A single word wider than width keeps a line to itself.
func wrapWords(f font.Font, para string, width float32) []string {
	words := splitWords(para)
	if len(words) == 0 {
		return []string{""}
	}
	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		if f.TextExtent(line)+f.TextExtent(w) > width {
			lines = append(lines, line)
			line = strings.TrimLeftFunc(w, isWrapSpace)
			continue
		}
		line += w
	}
	return append(lines, line)
}

// splitWords cuts s into runs of leading whitespace followed by a word.
// Trailing whitespace joins the last word.
func splitWords(s string) []string {
	var words []string
	start := 0
	inWord := false
	for i, r := range s {
		space := isWrapSpace(r)
		if space && inWord {
			words = append(words, s[start:i])
			start = i
		}
		inWord = !space
	}
	if start < len(s) {
		if strings.TrimFunc(s[start:], isWrapSpace) == "" && len(words) > 0 {
			words[len(words)-1] += s[start:]
		} else {
			words = append(words, s[start:])
		}
	}
	return words
}

func isWrapSpace(r rune) bool { return unicode.IsSpace(r) }

func alignLine(f font.Font, text string, width float32, hf TextHorzFormat) textLine {
	extent := f.TextExtent(text)
	l := textLine{Text: text}
	switch hf {
	case TextCentreAligned:
		l.X = (width - extent) * 0.5
	case TextRightAligned:
		l.X = width - extent
	case TextJustified:
		if spaces := countSpaces(text); spaces > 0 && extent < width {
			l.SpaceExtra = (width - extent) / float32(spaces)
		}
	}
	return l
}

func countSpaces(s string) int {
	return strings.Count(s, " ") + strings.Count(s, "\t")
}

// render draws the line with its area's left edge at pos
func (l textLine) render(buf render.GeometryBuffer, f font.Font, pos geom.Vec2, clip *geom.Rect, colours geom.ColourRect) {
	x := pos.X + l.X
	if l.SpaceExtra == 0 {
		f.Render(buf, l.Text, geom.V2(x, pos.Y), clip, colours)
		return
	}
	for _, seg := range l.segments() {
		if seg == " " || seg == "\t" {
			x += f.TextExtent(seg) + l.SpaceExtra
			continue
		}
		x += f.Render(buf, seg, geom.V2(x, pos.Y), clip, colours)
	}
}

// segments cuts the line into single spaces or tabs and the runs between
func (l textLine) segments() []string {
	var out []string
	start := 0
	for i, r := range l.Text {
		if r == ' ' || r == '\t' {
			if start < i {
				out = append(out, l.Text[start:i])
			}
			out = append(out, l.Text[i:i+1])
			start = i + 1
		}
	}
	if start < len(l.Text) {
		out = append(out, l.Text[start:])
	}
	return out
}
