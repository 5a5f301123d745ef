package harness

import (
	"fmt"

	"github.com/roach88/atommap/internal/ir"
)

// AssertionError is a failed expectation.
type AssertionError struct {
	Subject  string // "case <name>" or "summary"
	Expected string
	Actual   string
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	return fmt.Sprintf("%s: expected %s, actual %s", e.Subject, e.Expected, e.Actual)
}

// checkCase compares a journaled case against its expectation.
func checkCase(c Case, cr CaseResult) []string {
	subject := fmt.Sprintf("case %q", c.Name)

	if c.Expect.Error != "" {
		switch {
		case !cr.Failed():
			return []string{(&AssertionError{
				Subject:  subject,
				Expected: "error " + c.Expect.Error,
				Actual:   fmt.Sprintf("output %q", cr.Output),
			}).Error()}
		case cr.ErrorCode != c.Expect.Error:
			return []string{(&AssertionError{
				Subject:  subject,
				Expected: "error " + c.Expect.Error,
				Actual:   cr.ErrorMessage,
			}).Error()}
		}
		return nil
	}

	switch {
	case cr.Failed():
		return []string{(&AssertionError{
			Subject:  subject,
			Expected: fmt.Sprintf("output %q", c.Expect.Output),
			Actual:   cr.ErrorMessage,
		}).Error()}
	case cr.Output != c.Expect.Output:
		return []string{(&AssertionError{
			Subject:  subject,
			Expected: fmt.Sprintf("output %q", c.Expect.Output),
			Actual:   fmt.Sprintf("output %q", cr.Output),
		}).Error()}
	}
	return nil
}

// checkSummary compares the journaled run against the expected summary.
func checkSummary(want Summary, run ir.Run) []string {
	var errs []string
	check := func(field, expected, actual string) {
		if expected != actual {
			errs = append(errs, (&AssertionError{
				Subject:  "summary " + field,
				Expected: expected,
				Actual:   actual,
			}).Error())
		}
	}

	check("status", want.Status, string(run.Status))
	check("processed", fmt.Sprint(want.Processed), fmt.Sprint(run.Processed))
	check("succeeded", fmt.Sprint(want.Succeeded), fmt.Sprint(run.Succeeded))
	check("failed", fmt.Sprint(want.Failed), fmt.Sprint(run.Failed))
	return errs
}
