package libdiff

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/signadot/normal/codec"
	"github.com/signadot/normal/ir"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

type Op int

const (
	Equal Op = iota
	Insert
	Delete
)

func (op Op) String() string {
	switch op {
	case Insert:
		return "+"
	case Delete:
		return "-"
	default:
		return " "
	}
}

// Line is one line of the indented JSON rendering of a tree.
type Line struct {
	Op   Op
	Text string
}

func (l Line) String() string {
	return l.Op.String() + " " + l.Text
}

// Lines diffs the indented JSON renderings of from and to line by line.
func Lines(from, to *ir.Node) ([]Line, error) {
	c := codec.JSON(codec.JSONIndent("  "))
	fromText, err := c.Encode(from)
	if err != nil {
		return nil, fmt.Errorf("error encoding from: %w", err)
	}
	toText, err := c.Encode(to)
	if err != nil {
		return nil, fmt.Errorf("error encoding to: %w", err)
	}
	return diffText(string(fromText), string(toText)), nil
}

func diffText(from, to string) []Line {
	dmp := diffpatch.New()
	a, b, lineArray := dmp.DiffLinesToChars(from, to)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lineArray)
	var res []Line
	for i := range diffs {
		diff := &diffs[i]
		var op Op
		switch diff.Type {
		case diffpatch.DiffInsert:
			op = Insert
		case diffpatch.DiffDelete:
			op = Delete
		case diffpatch.DiffEqual:
			op = Equal
		}
		text := strings.TrimSuffix(diff.Text, "\n")
		for line := range strings.SplitSeq(text, "\n") {
			res = append(res, Line{Op: op, Text: line})
		}
	}
	return res
}

// Changed reports whether any line was inserted or deleted.
func Changed(lines []Line) bool {
	for i := range lines {
		if lines[i].Op != Equal {
			return true
		}
	}
	return false
}

// Colors colors inserted and deleted lines. A nil *Colors writes plain text.
type Colors struct {
	Insert func(string, ...any) string
	Delete func(string, ...any) string
}

func NewColors() *Colors {
	return &Colors{
		Insert: color.RGB(8, 196, 16).SprintfFunc(),
		Delete: color.RGB(216, 32, 32).SprintfFunc(),
	}
}

func (c *Colors) line(l Line) string {
	s := l.String()
	if c == nil {
		return s
	}
	s = strings.ReplaceAll(s, "%", "%%")
	switch l.Op {
	case Insert:
		return c.Insert(s)
	case Delete:
		return c.Delete(s)
	default:
		return l.String()
	}
}

// Write writes lines to w, one per line. With context >= 0, runs of equal
// lines longer than 2*context are elided.
func Write(w io.Writer, lines []Line, colors *Colors, context int) error {
	for i := 0; i < len(lines); i++ {
		if context >= 0 && lines[i].Op == Equal {
			j := i
			for j < len(lines) && lines[j].Op == Equal {
				j++
			}
			if skip := elide(i, j, len(lines), context); skip > 0 {
				lo, hi := i+context, j-context
				if i == 0 {
					lo = 0
				}
				if j == len(lines) {
					hi = len(lines)
				}
				for k := i; k < lo; k++ {
					if _, err := fmt.Fprintln(w, colors.line(lines[k])); err != nil {
						return err
					}
				}
				if _, err := fmt.Fprintf(w, "@@ %d lines @@\n", hi-lo); err != nil {
					return err
				}
				for k := hi; k < j; k++ {
					if _, err := fmt.Fprintln(w, colors.line(lines[k])); err != nil {
						return err
					}
				}
				i = j - 1
				continue
			}
		}
		if _, err := fmt.Fprintln(w, colors.line(lines[i])); err != nil {
			return err
		}
	}
	return nil
}

// elide returns how many lines of the equal run [i, j) are hidden.
func elide(i, j, n, context int) int {
	keep := 2 * context
	if i == 0 || j == n {
		keep = context
	}
	if i == 0 && j == n {
		return 0
	}
	if j-i <= keep {
		return 0
	}
	return j - i - keep
}
