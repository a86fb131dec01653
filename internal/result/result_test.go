package result

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vk/bldrgo/internal/call"
)

func record(success, failOnError bool) CallRecord {
	o := call.OK()
	if !success {
		o = call.Failf("boom")
	}
	return CallRecord{Task: "t", Type: "exec", FailOnError: failOnError, Outcome: o}
}

func TestAggregate(t *testing.T) {
	testCases := []struct {
		name        string
		records     []CallRecord
		fatal       error
		wantStatus  Status
		wantAborted bool
		wantFails   int
	}{
		{
			name:       "empty build succeeds",
			wantStatus: StatusSucceeded,
		},
		{
			name:       "all calls succeed",
			records:    []CallRecord{record(true, false), record(true, true)},
			wantStatus: StatusSucceeded,
		},
		{
			name:       "non-aborting failure still fails the build",
			records:    []CallRecord{record(false, false), record(true, false)},
			wantStatus: StatusFailed,
			wantFails:  1,
		},
		{
			name:        "aborting failure is flagged",
			records:     []CallRecord{record(true, false), record(false, true)},
			wantStatus:  StatusFailed,
			wantAborted: true,
			wantFails:   1,
		},
		{
			name:       "fatal error fails an otherwise clean build",
			records:    []CallRecord{record(true, false)},
			fatal:      errors.New("unknown call type"),
			wantStatus: StatusFailed,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out := Aggregate(tc.records, tc.fatal)
			assert.Equal(t, tc.wantStatus, out.Status)
			assert.Equal(t, tc.wantAborted, out.Aborted)
			assert.Equal(t, tc.wantFails, out.Failures)
			assert.Len(t, out.FailedCalls(), tc.wantFails)
			if tc.wantStatus == StatusSucceeded {
				assert.Equal(t, 0, out.ExitCode())
			} else {
				assert.NotEqual(t, 0, out.ExitCode())
			}
		})
	}
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "succeeded", StatusSucceeded.String())
	assert.Equal(t, "failed", StatusFailed.String())
}
