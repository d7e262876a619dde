package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/dgallion1/casgest/internal/booklet"
)

var (
	// code, optional resolution kind, dot leaders, page.
	caseFilePattern = regexp.MustCompile(`(casaci.n n. \d+.{1,3}\d{4} [a-zñáéíóú ]+?)(?:\s+(?:sentencia|auto))?[. ]*?(\d+)`)
	// code only; the page is expected on the following line.
	caseFileFirstPartPattern = regexp.MustCompile(`(casaci.n n. \d+.{1,3}\d{4} [a-zñáéíóú ]+)`)
)

type continuationState int

const (
	stateIdle continuationState = iota
	statePending
	stateExhausted
)

// Continuation merges a case-file heading whose page number wrapped onto
// the next line. It holds at most one pending first part and tries a
// single lookahead line before giving up on it.
type Continuation struct {
	state   continuationState
	pending string
}

// Feed consumes one normalised line and returns a case file when the line,
// alone or joined to the pending first part, completes an entry.
func (c *Continuation) Feed(line string) (*booklet.CaseFile, bool) {
	if cf, ok := matchCaseFile(line); ok {
		return cf, true
	}

	if m := caseFileFirstPartPattern.FindStringSubmatch(line); m != nil {
		c.state = statePending
		c.pending = strings.TrimSpace(m[1])
		return nil, false
	}

	if c.state != statePending {
		c.state = stateExhausted
		return nil, false
	}
	c.state = stateExhausted
	return matchCaseFile(c.pending + " " + line)
}

// Pending reports the first part waiting for its page number, if any.
func (c *Continuation) Pending() (string, bool) {
	return c.pending, c.state == statePending
}

func matchCaseFile(text string) (*booklet.CaseFile, bool) {
	m := caseFilePattern.FindStringSubmatch(text)
	if m == nil {
		return nil, false
	}
	page, err := strconv.Atoi(m[2])
	if err != nil {
		return nil, false
	}
	return &booklet.CaseFile{
		Code: NormalizeCode(m[1]),
		Page: page,
	}, true
}
