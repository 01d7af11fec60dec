package router

import (
	"errors"
	"strings"
)

// Op identifies a routed operation by its keyword.
type Op string

const (
	OpHelp         Op = "help"
	OpAddTodo      Op = "addtodo"
	OpUpdateTodo   Op = "updatetodo"
	OpShowTodos    Op = "showtodos"
	OpListSessions Op = "listsessions"
	OpNewSession   Op = "newsession"
	OpSaveCommand  Op = "savecommand"
	OpSaveNote     Op = "savenote"
	OpSaveData     Op = "savedata"
	OpSaveResult   Op = "saveresult"
	OpPlayback     Op = "playback"
	OpRunProject   Op = "runproject"
	OpUnknown      Op = "unknown"
)

// argShape describes how the text after a keyword is split.
type argShape int

const (
	// shapeNone: the line must be exactly the keyword.
	shapeNone argShape = iota
	// shapeRest: one argument, the whole remainder of the line.
	shapeRest
	// shapeTokenRest: one space-delimited token, then the remainder.
	shapeTokenRest
	// shapeTokens: quote-aware tokens, at least two.
	shapeTokens
)

var grammar = map[Op]argShape{
	OpHelp:         shapeNone,
	OpShowTodos:    shapeNone,
	OpListSessions: shapeNone,
	OpNewSession:   shapeRest,
	OpPlayback:     shapeRest,
	OpRunProject:   shapeRest,
	OpSaveCommand:  shapeTokenRest,
	OpSaveNote:     shapeTokenRest,
	OpSaveData:     shapeTokenRest,
	OpSaveResult:   shapeTokenRest,
	OpAddTodo:      shapeTokens,
	OpUpdateTodo:   shapeTokens,
}

// ErrMalformed is returned by Parse when a known keyword is missing arguments
// the router can silently skip over.
var ErrMalformed = errors.New("malformed arguments")

// Command is a parsed input line.
type Command struct {
	Op   Op
	Args []string
}

// Parse splits line into a keyword and its arguments.
//
// The keyword is everything before the first space. A keyword that takes
// arguments but has no space after it is unknown, as is a no-argument keyword
// followed by anything. Known keywords whose arguments are incomplete return
// ErrMalformed.
func Parse(line string) (Command, error) {
	keyword, rest, hasRest := strings.Cut(line, " ")

	shape, known := grammar[Op(keyword)]
	if !known {
		return Command{Op: OpUnknown}, nil
	}
	op := Op(keyword)

	switch shape {
	case shapeNone:
		if hasRest {
			return Command{Op: OpUnknown}, nil
		}
		return Command{Op: op}, nil

	case shapeRest:
		if !hasRest {
			return Command{Op: OpUnknown}, nil
		}
		return Command{Op: op, Args: []string{rest}}, nil

	case shapeTokenRest:
		if !hasRest {
			return Command{Op: OpUnknown}, nil
		}
		name, text, ok := strings.Cut(rest, " ")
		if !ok {
			return Command{Op: op}, ErrMalformed
		}
		return Command{Op: op, Args: []string{name, text}}, nil

	case shapeTokens:
		if !hasRest {
			return Command{Op: OpUnknown}, nil
		}
		tokens := splitTokens(rest)
		if len(tokens) < 2 {
			return Command{Op: op}, ErrMalformed
		}
		// The last argument takes the remaining tokens: the status for
		// updatetodo, the optional priority for addtodo.
		if op == OpUpdateTodo {
			return Command{Op: op, Args: []string{tokens[0], strings.Join(tokens[1:], " ")}}, nil
		}
		args := []string{tokens[0], tokens[1]}
		if len(tokens) > 2 {
			args = append(args, strings.Join(tokens[2:], " "))
		}
		return Command{Op: op, Args: args}, nil
	}

	return Command{Op: OpUnknown}, nil
}

// splitTokens splits s on spaces and tabs. Double quotes group words into one
// token and are removed; an unterminated quote runs to the end of s.
func splitTokens(s string) []string {
	var (
		tokens  []string
		cur     strings.Builder
		inToken bool
		quoted  bool
	)
	for _, r := range s {
		switch {
		case r == '"':
			quoted = !quoted
			inToken = true
		case (r == ' ' || r == '\t') && !quoted:
			if inToken {
				tokens = append(tokens, cur.String())
				cur.Reset()
				inToken = false
			}
		default:
			cur.WriteRune(r)
			inToken = true
		}
	}
	if inToken {
		tokens = append(tokens, cur.String())
	}
	return tokens
}
