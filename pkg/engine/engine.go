// Package engine evaluates quote scripts: small zygomys Lisp programs
// that declare parts (STL files or parametric shapes), copies, scale,
// and material and printer choices. Evaluation produces a job.Job.
//
//	(filament :petg)
//	(infill 30)
//	(part "bracket" (model "bracket.stl") :copies 4)
//	(part "spacer" (difference (cylinder 10 6) (cylinder 12 3)) :scale 1.5)
package engine

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/chazu/printcost/pkg/job"
	"github.com/chazu/printcost/pkg/logging"
)

// DefaultTimeout is the evaluation limit when Engine.Timeout is unset.
const DefaultTimeout = 5 * time.Second

var (
	// ErrTimeout is returned when evaluation exceeds the engine timeout.
	ErrTimeout = errors.New("evaluation timed out")
	// ErrSuperseded is returned when a newer evaluation started first.
	ErrSuperseded = errors.New("evaluation superseded by newer request")
)

// EvalError is a non-fatal problem in user code: a parse error, an
// unknown symbol, or a builtin rejecting its arguments.
type EvalError struct {
	Line    int
	Col     int
	Message string
}

func (e EvalError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// EvalResult is the full output of an evaluation. Job is nil whenever
// Errors is non-empty.
type EvalResult struct {
	Job      *job.Job    `json:"job"`
	Errors   []EvalError `json:"errors"`
	Warnings []string    `json:"warnings"`
}

// Engine runs scripts, each in a fresh sandbox. It is safe for
// concurrent use; only the most recent call's result is delivered.
type Engine struct {
	Timeout time.Duration

	mu         sync.Mutex
	generation uint64
}

// NewEngine returns an engine with DefaultTimeout.
func NewEngine() *Engine {
	return &Engine{Timeout: DefaultTimeout}
}

// Evaluate runs source and returns the job it describes.
//
// User mistakes are reported in EvalResult.Errors with a nil error. The
// returned error is reserved for failures of the evaluation itself:
// ErrTimeout, ErrSuperseded, or a recovered interpreter panic.
func (e *Engine) Evaluate(source string) (EvalResult, error) {
	e.mu.Lock()
	e.generation++
	gen := e.generation
	e.mu.Unlock()

	ch := make(chan evalOutcome, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- evalOutcome{err: fmt.Errorf("panic during evaluation: %v", r)}
			}
		}()
		res := evaluate(source)
		ch <- evalOutcome{result: res}
	}()

	res, err := e.wait(ch, gen)
	if err != nil {
		logging.Logger().Warn("script evaluation failed", "generation", gen, "err", err)
		return EvalResult{}, err
	}
	if len(res.Errors) > 0 {
		logging.Logger().Debug("script has errors", "generation", gen, "count", len(res.Errors))
	}
	return res, nil
}

func evaluate(source string) EvalResult {
	j := job.New()
	if strings.TrimSpace(source) == "" {
		return EvalResult{Job: j}
	}

	var warnings []string
	env := zygo.NewZlispSandbox()
	defer env.Stop()
	registerBuiltins(env, j, func(w string) { warnings = append(warnings, w) })

	if err := env.LoadString(preprocessSource(source)); err != nil {
		return EvalResult{Errors: parseZygomysError(err)}
	}
	if _, err := env.Run(); err != nil {
		return EvalResult{Errors: parseZygomysError(err)}
	}
	return EvalResult{Job: j, Warnings: warnings}
}

var (
	// zygomys reports "Error on line N: ..." for parse failures.
	linePattern      = regexp.MustCompile(`(?i)(?:error )?on line (\d+):\s*(.*)`)
	linePatternShort = regexp.MustCompile(`(?i)^line (\d+):\s*(.*)`)
)

// parseZygomysError extracts a line number from an interpreter error
// when one is present.
func parseZygomysError(err error) []EvalError {
	msg := err.Error()
	for _, re := range []*regexp.Regexp{linePattern, linePatternShort} {
		if m := re.FindStringSubmatch(msg); m != nil {
			line, _ := strconv.Atoi(m[1])
			return []EvalError{{Line: line, Message: strings.TrimSpace(m[2])}}
		}
	}
	return []EvalError{{Message: strings.TrimSpace(msg)}}
}
