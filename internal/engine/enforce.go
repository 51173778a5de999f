package engine

import (
	"strconv"
	"strings"
)

// Enforcement pass over a token array: maximum nesting depth and duplicate
// key handling, applied before any schema-level interpretation.

// DuplicateStrictness controls duplicate key handling.
type DuplicateStrictness int

const (
	DupIgnore DuplicateStrictness = iota
	DupWarn
	DupError
)

// EnforceOptions controls enforcement behavior. Zero values disable checks.
type EnforceOptions struct {
	OnDuplicate DuplicateStrictness
	MaxDepth    int
	// IssueSink receives non-fatal issues (duplicate keys in DupWarn mode).
	IssueSink func(SimpleIssue)
}

// SimpleIssue is a minimal issue representation used by internal helpers.
type SimpleIssue struct {
	Code    string
	Path    string
	Message string
	Offset  int
}

// IssueError is a lightweight error carrying a SimpleIssue.
type IssueError struct{ SimpleIssue }

func (e IssueError) Error() string { return e.SimpleIssue.Message }

const (
	CodeMaxDepthExceeded = "max_depth_exceeded"
	CodeDuplicateKey     = "duplicate_key"
)

// Enforce walks the pre-order token array of js and stops at the first fatal
// violation.
func Enforce(js []byte, toks []Token, opt EnforceOptions) error {
	if opt.MaxDepth <= 0 && opt.OnDuplicate == DupIgnore {
		return nil
	}
	w := walker{js: js, toks: toks, opt: opt}
	i := 0
	for i < len(toks) {
		next, err := w.walk(i, 0, "")
		if err != nil {
			return err
		}
		i = next
	}
	return nil
}

type walker struct {
	js   []byte
	toks []Token
	opt  EnforceOptions
}

// walk visits the subtree rooted at toks[i] and returns the index just past it.
func (w *walker) walk(i, depth int, path string) (int, error) {
	if i >= len(w.toks) {
		return i, nil
	}
	tok := w.toks[i]
	switch tok.Kind {
	case KindObject, KindArray:
		depth++
		if w.opt.MaxDepth > 0 && depth > w.opt.MaxDepth {
			return i, IssueError{SimpleIssue{Code: CodeMaxDepthExceeded, Path: pathOrRoot(path), Message: "max depth exceeded", Offset: tok.Start}}
		}
	default:
		return i + 1, nil
	}

	j := i + 1
	if tok.Kind == KindArray {
		for k := 0; k < tok.Size; k++ {
			var err error
			j, err = w.walk(j, depth, path+"/"+strconv.Itoa(k))
			if err != nil {
				return j, err
			}
		}
		return j, nil
	}

	var seen map[string]struct{}
	if w.opt.OnDuplicate != DupIgnore {
		seen = make(map[string]struct{}, tok.Size)
	}
	for k := 0; k < tok.Size && j < len(w.toks); k++ {
		key := w.toks[j]
		name := string(w.js[key.Start:key.End])
		kpath := path + "/" + escapePointer(name)
		if seen != nil {
			if _, dup := seen[name]; dup {
				si := SimpleIssue{Code: CodeDuplicateKey, Path: kpath, Message: "duplicate key", Offset: key.Start}
				if w.opt.OnDuplicate == DupError {
					return j, IssueError{si}
				}
				if w.opt.IssueSink != nil {
					w.opt.IssueSink(si)
				}
			}
			seen[name] = struct{}{}
		}
		j++
		if key.Size > 0 {
			var err error
			j, err = w.walk(j, depth, kpath)
			if err != nil {
				return j, err
			}
		}
	}
	return j, nil
}

func pathOrRoot(p string) string {
	if p == "" {
		return "/"
	}
	return p
}

// escapePointer escapes a key per RFC 6901.
func escapePointer(s string) string {
	if !strings.ContainsAny(s, "~/") {
		return s
	}
	s = strings.ReplaceAll(s, "~", "~0")
	return strings.ReplaceAll(s, "/", "~1")
}
