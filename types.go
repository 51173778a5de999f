package cspjson

// Severity expresses the severity level for issues.
type Severity int

const (
	Ignore Severity = iota
	Warn
	Error
)

// ParseOpt bundles parsing options. Zero values disable each check. When
// several options are passed, the last one wins.
type ParseOpt struct {
	// OnDuplicateKey controls duplicate keys inside one object. Ignore keeps
	// the last occurrence, Warn reports it through OnWarning, Error fails
	// with CodeDuplicateKey.
	OnDuplicateKey Severity
	MaxDepth       int // Maximum container nesting (CodeMaxDepthExceeded).
	MaxTokens      int // Maximum token count (CodeTokenBudgetExceeded).
	// OnWarning receives non-fatal issues.
	OnWarning func(Issue)
}

// PrintOpt bundles printing options.
type PrintOpt struct {
	// EscapeStrings quotes meta.id and meta.algo as JSON strings. By default
	// they are written verbatim between quotes.
	EscapeStrings bool
}

func lastParseOpt(opts []ParseOpt) ParseOpt {
	if len(opts) == 0 {
		return ParseOpt{}
	}
	return opts[len(opts)-1]
}

func lastPrintOpt(opts []PrintOpt) PrintOpt {
	if len(opts) == 0 {
		return PrintOpt{}
	}
	return opts[len(opts)-1]
}
