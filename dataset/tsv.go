// Package dataset turns catalogue files into catalog.Catalog values.
//
// Two formats are understood:
//
//   - the tab-separated legacy layout: personas.tsv, compatibility.tsv and
//     treasure.tsv in one directory (LoadDir, ParsePersonas,
//     ParseCompatibility, ParseTreasure);
//   - a single YAML bundle holding the same three sections (LoadBundle).
//
// Every loader ends in catalog.New, so data that parses but violates the
// catalogue contract is still rejected before a fusion engine can see it.
// A small sample catalogue is embedded in the binary and returned by Sample.
package dataset

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/katalvlaran/personafuse/catalog"
	"github.com/katalvlaran/personafuse/persona"
)

// ErrSyntax is wrapped by every parse error; the message carries the line.
var ErrSyntax = errors.New("dataset: syntax error")

// Persona line layout: level, name, stats, affinities, optional tail.
const (
	colLevel      = 0
	colName       = 1
	colStats      = 2
	colAffinities = colStats + persona.NumStats
	colTail       = colAffinities + persona.NumElements
)

// Tail markers of the persona format.
const (
	markDLC      = "y"
	markTreasure = "t"
)

func syntaxErr(line int, format string, args ...any) error {
	return fmt.Errorf("%w: line %d: %s", ErrSyntax, line, fmt.Sprintf(format, args...))
}

// scanLines feeds every line of r to fn with its 1-based number. Trailing
// carriage returns are dropped so files saved with CRLF endings parse.
func scanLines(r io.Reader, fn func(n int, line string) error) error {
	sc := bufio.NewScanner(r)
	n := 0
	for sc.Scan() {
		n++
		if err := fn(n, strings.TrimRight(sc.Text(), "\r")); err != nil {
			return err
		}
	}

	return sc.Err()
}

// ParsePersonas reads the persona layout: an arcana name on its own line,
// then one tab-separated line per persona
//
//	level name str mag end agi luck phys gun fire ice elec wind psy nuke bless curse [tail]
//
// where the optional tail is "y" (DLC), "t" (treasure) or the guillotine
// ingredient names. Blank lines separate arcana. Personas keep file order;
// sorting is checked later by catalog.New.
func ParsePersonas(r io.Reader) ([]*catalog.Arcana, error) {
	var (
		order   []string
		members = map[string][]*persona.Entity{}
		current string
	)

	err := scanLines(r, func(n int, line string) error {
		if strings.TrimSpace(line) == "" {
			return nil
		}
		tokens := strings.Split(line, "\t")
		if len(tokens) == 1 {
			current = strings.TrimSpace(tokens[0])
			if _, seen := members[current]; seen {
				return syntaxErr(n, "arcana %q declared twice", current)
			}
			members[current] = nil
			order = append(order, current)
			return nil
		}
		if current == "" {
			return syntaxErr(n, "persona line before any arcana")
		}

		p, err := parsePersonaLine(n, tokens)
		if err != nil {
			return err
		}
		p.Arcana = current
		members[current] = append(members[current], p)

		return nil
	})
	if err != nil {
		return nil, err
	}

	out := make([]*catalog.Arcana, 0, len(order))
	for _, name := range order {
		out = append(out, catalog.NewArcana(name, members[name]))
	}

	return out, nil
}

func parsePersonaLine(n int, tokens []string) (*persona.Entity, error) {
	if len(tokens) < colTail {
		return nil, syntaxErr(n, "want at least %d fields, got %d", colTail, len(tokens))
	}

	level, err := strconv.Atoi(strings.TrimSpace(tokens[colLevel]))
	if err != nil {
		return nil, syntaxErr(n, "level %q: %v", tokens[colLevel], err)
	}
	p := &persona.Entity{Name: strings.TrimSpace(tokens[colName]), Level: level}

	for i := 0; i < persona.NumStats; i++ {
		tok := strings.TrimSpace(tokens[colStats+i])
		v, err := strconv.Atoi(tok)
		if err != nil {
			return nil, syntaxErr(n, "%s %q: %v", persona.StatNames[i], tok, err)
		}
		p.Stats[i] = v
	}
	for i := 0; i < persona.NumElements; i++ {
		a, err := persona.ParseAffinity(strings.TrimSpace(tokens[colAffinities+i]))
		if err != nil {
			return nil, syntaxErr(n, "%s: %v", persona.ElementNames[i], err)
		}
		p.Affinities[i] = a
	}

	tail := tokens[colTail:]
	switch {
	case len(tail) == 0:
		p.Kind = persona.KindRegular
	case len(tail) == 1 && tail[0] == markDLC:
		p.Kind = persona.KindDLC
	case len(tail) == 1 && tail[0] == markTreasure:
		p.Kind = persona.KindTreasure
	default:
		p.Kind = persona.KindGuillotine
		for _, ing := range tail {
			if ing = strings.TrimSpace(ing); ing != "" {
				p.Ingredients = append(p.Ingredients, ing)
			}
		}
	}

	return p, nil
}

// ParseCompatibility reads an arcana line followed by "other<TAB>result"
// lines. Each entry is returned once; catalog.New makes it symmetric.
func ParseCompatibility(r io.Reader) ([]catalog.Compatibility, error) {
	var (
		out     []catalog.Compatibility
		current string
	)

	err := scanLines(r, func(n int, line string) error {
		if strings.TrimSpace(line) == "" {
			return nil
		}
		tokens := strings.Split(line, "\t")
		switch len(tokens) {
		case 1:
			current = strings.TrimSpace(tokens[0])
		case 2:
			if current == "" {
				return syntaxErr(n, "compatibility entry before any arcana")
			}
			out = append(out, catalog.Compatibility{
				A:      current,
				B:      strings.TrimSpace(tokens[0]),
				Result: strings.TrimSpace(tokens[1]),
			})
		default:
			return syntaxErr(n, "want 1 or 2 fields, got %d", len(tokens))
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// ParseTreasure reads a treasure persona name line followed by
// "arcana<TAB>shift" lines.
func ParseTreasure(r io.Reader) (catalog.TreasureTable, error) {
	out := catalog.TreasureTable{}
	var current string

	err := scanLines(r, func(n int, line string) error {
		if strings.TrimSpace(line) == "" {
			return nil
		}
		tokens := strings.Split(line, "\t")
		switch len(tokens) {
		case 1:
			current = strings.TrimSpace(tokens[0])
			if _, seen := out[current]; seen {
				return syntaxErr(n, "treasure %q declared twice", current)
			}
			out[current] = map[string]int{}
		case 2:
			if current == "" {
				return syntaxErr(n, "shift before any treasure persona")
			}
			arcana := strings.TrimSpace(tokens[0])
			shift, err := strconv.Atoi(strings.TrimSpace(tokens[1]))
			if err != nil {
				return syntaxErr(n, "shift %q: %v", tokens[1], err)
			}
			if _, dup := out[current][arcana]; dup {
				return syntaxErr(n, "%s shift for %s declared twice", current, arcana)
			}
			out[current][arcana] = shift
		default:
			return syntaxErr(n, "want 1 or 2 fields, got %d", len(tokens))
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}
