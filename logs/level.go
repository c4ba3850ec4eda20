package logs

import (
	"iter"
	"strconv"
	"strings"
	"unicode"
)

// Level is the severity of a call and the verbosity threshold of a handle.
// A higher level admits more output.
type Level int

const (
	LevelError Level = iota + 1 // error
	LevelWarn                   // warn
	LevelInfo                   // info
	LevelLog                    // log
	LevelDebug                  // debug
	LevelTrace                  // trace
)

// DefaultLevel is the initial global level of a [Factory].
const DefaultLevel = LevelWarn

var levelNames = map[string]Level{
	"error": LevelError,
	"warn":  LevelWarn,
	"info":  LevelInfo,
	"log":   LevelLog,
	"debug": LevelDebug,
	"trace": LevelTrace,
}

// String returns the name of a known level, or its decimal value.
func (l Level) String() string {
	switch l {
	case LevelError:
		return "error"
	case LevelWarn:
		return "warn"
	case LevelInfo:
		return "info"
	case LevelLog:
		return "log"
	case LevelDebug:
		return "debug"
	case LevelTrace:
		return "trace"
	}

	return strconv.Itoa(int(l))
}

// Levels returns an iterator over the names of all defined levels, from
// least to most verbose.
func Levels() iter.Seq[string] {
	return func(yield func(string) bool) {
		for l := LevelError; l <= LevelTrace; l++ {
			if !yield(l.String()) {
				return
			}
		}
	}
}

// ParseLevel resolves s by exact level name, then by its leading decimal
// integer: leading whitespace and a sign are accepted and anything after the
// digits is ignored, so "3abc" is 3. It reports false if s is neither, or if
// it parses to zero.
func ParseLevel(s string) (Level, bool) {
	if l, ok := levelNames[s]; ok {
		return l, true
	}

	s = strings.TrimLeftFunc(s, unicode.IsSpace)

	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}

	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}

	if end == digits {
		return 0, false
	}

	n, err := strconv.Atoi(s[:end])
	if err != nil || n == 0 {
		return 0, false
	}

	return Level(n), true
}

// ParseLevelOr is like [ParseLevel] but returns fallback when s does not
// resolve to a level.
func ParseLevelOr(s string, fallback Level) Level {
	if l, ok := ParseLevel(s); ok {
		return l
	}

	return fallback
}
