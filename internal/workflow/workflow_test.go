package workflow

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestRun_FatalStopsExecution(t *testing.T) {
	var ran []string
	boom := errors.New("boom")

	err := Run(context.Background(), zap.NewNop(), []Step{
		{Name: "first", Severity: Fatal, Run: func(ctx context.Context) error {
			ran = append(ran, "first")
			return nil
		}},
		{Name: "second", Severity: Fatal, Run: func(ctx context.Context) error {
			ran = append(ran, "second")
			return boom
		}},
		{Name: "third", Severity: Fatal, Run: func(ctx context.Context) error {
			ran = append(ran, "third")
			return nil
		}},
	})

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"first", "second"}, ran)
}

func TestRun_AdvisoryFailureContinues(t *testing.T) {
	var ran []string

	err := Run(context.Background(), zap.NewNop(), []Step{
		{Name: "advisory", Severity: Advisory, Run: func(ctx context.Context) error {
			ran = append(ran, "advisory")
			return errors.New("ignored")
		}},
		{Name: "after", Severity: Fatal, Run: func(ctx context.Context) error {
			ran = append(ran, "after")
			return nil
		}},
	})

	assert.NoError(t, err)
	assert.Equal(t, []string{"advisory", "after"}, ran)
}

func TestRun_AdvisoryNeverBecomesResult(t *testing.T) {
	err := Run(context.Background(), zap.NewNop(), []Step{
		{Name: "a", Severity: Advisory, Run: func(ctx context.Context) error {
			return errors.New("a failed")
		}},
		{Name: "b", Severity: Advisory, Run: func(ctx context.Context) error {
			return errors.New("b failed")
		}},
	})

	assert.NoError(t, err)
}
