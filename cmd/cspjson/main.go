// Command cspjson inspects and rewrites CSP-JSON documents.
//
// Usage:
//
//	cspjson validate [--all] FILE
//	cspjson normalize [-o OUT] FILE
//	cspjson fmt [-o OUT] FILE
//	cspjson check FILE (SOLUTION_FILE | --solution '[v0, v1, ...]')
//	cspjson info FILE
//
// FILE may be "-" for standard input. A document error exits with
// 10 + the ordinal of its code (see cspjson.Codes); I/O and usage errors
// exit with 1; check exits with 3 when the assignment is not a solution.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	cspjson "github.com/michal-dobrogost/csp-json"
)

const (
	exitOK        = 0
	exitFailure   = 1
	exitNotSolved = 3
	exitCodeBase  = 10
)

// exitError carries an exit status out of a cobra RunE. A nil err means
// the failure was already reported.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit status %d", e.code)
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error { return e.err }

// exitCode maps a document error to its exit status.
func exitCode(err error) int {
	if ord := cspjson.CodeOf(err).Ordinal(); ord >= 0 {
		return exitCodeBase + ord
	}
	return exitFailure
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if args == nil {
		args = []string{}
	}
	a := &app{stdin: stdin, stdout: stdout, stderr: stderr}
	cmd := a.rootCmd()
	cmd.SetArgs(args)
	err := cmd.Execute()
	if err == nil {
		return exitOK
	}
	var ee *exitError
	if errors.As(err, &ee) {
		if ee.err != nil {
			fmt.Fprintln(stderr, "cspjson:", ee.err)
		}
		return ee.code
	}
	fmt.Fprintln(stderr, "cspjson:", err)
	return exitFailure
}
