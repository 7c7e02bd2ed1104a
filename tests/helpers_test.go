package tests_test

import (
	"fmt"
	"strings"

	"github.com/containerd/nerdctl/mod/tigron/test"
	"github.com/containerd/nerdctl/mod/tigron/tig"
)

// expectContains returns a comparator verifying the output contains a substring.
func expectContains(substr string) test.Comparator {
	return func(stdout string, testing tig.T) {
		testing.Helper()

		if !strings.Contains(stdout, substr) {
			testing.Log(fmt.Sprintf("expected substring %q not found in output:\n%s", substr, stdout))
			testing.Fail()
		}
	}
}

// expectNotContains returns a comparator verifying the output does not contain a substring.
func expectNotContains(substr string) test.Comparator {
	return func(stdout string, testing tig.T) {
		testing.Helper()

		if strings.Contains(stdout, substr) {
			testing.Log(fmt.Sprintf("unexpected substring %q found in output:\n%s", substr, stdout))
			testing.Fail()
		}
	}
}

// expectProperties returns a comparator verifying that a summary line is present for each analyzer.
func expectProperties(names ...string) test.Comparator {
	return func(stdout string, testing tig.T) {
		testing.Helper()

		for _, name := range names {
			if !strings.Contains(stdout, name+":") {
				testing.Log(fmt.Sprintf("expected property %q not found in output:\n%s", name, stdout))
				testing.Fail()
			}
		}
	}
}

// expectSignalWarning returns a comparator verifying the signal line lists the warning.
func expectSignalWarning(warning string) test.Comparator {
	return func(stdout string, testing tig.T) {
		testing.Helper()

		for _, line := range strings.Split(stdout, "\n") {
			if strings.Contains(line, "signal:") && strings.Contains(line, warning) {
				return
			}
		}

		testing.Log(fmt.Sprintf("expected signal warning %q not found in output:\n%s", warning, stdout))
		testing.Fail()
	}
}
