// Package batch runs a program against a list of test cases and
// aggregates pass/fail results.
package batch

import (
	"context"
	"strings"

	"codejudge/internal/judge/model"
)

// Judge is the execution dependency; satisfied by *judge.Judge.
type Judge interface {
	Execute(ctx context.Context, req model.ExecutionRequest) model.ExecutionResult
}

// TestCase is one input/expected pair.
type TestCase struct {
	ID       string `json:"testId"`
	Input    string `json:"input"`
	Expected string `json:"expected"`
}

// CaseResult reports one test case outcome.
type CaseResult struct {
	TestID          string  `json:"testId"`
	Passed          bool    `json:"passed"`
	ExecutionTimeMs float64 `json:"executionTimeMs"`
	Error           string  `json:"error,omitempty"`
}

// Summary aggregates a batch run.
type Summary struct {
	Passed  int          `json:"passed"`
	Total   int          `json:"total"`
	Results []CaseResult `json:"results"`
}

// Run executes the program once per test case, comparing trimmed actual
// output against the trimmed expectation.
func Run(ctx context.Context, j Judge, code string, lang model.Language, cases []TestCase) Summary {
	summary := Summary{Total: len(cases), Results: make([]CaseResult, 0, len(cases))}
	for _, tc := range cases {
		res := j.Execute(ctx, model.ExecutionRequest{
			Code:     code,
			Language: lang,
			Stdin:    tc.Input,
		})
		passed := res.Success && strings.TrimSpace(res.Output) == strings.TrimSpace(tc.Expected)
		if passed {
			summary.Passed++
		}
		summary.Results = append(summary.Results, CaseResult{
			TestID:          tc.ID,
			Passed:          passed,
			ExecutionTimeMs: res.ExecutionTimeMs,
			Error:           res.Error,
		})
	}
	return summary
}
