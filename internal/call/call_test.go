package call

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/bldrgo/internal/config"
	"github.com/vk/bldrgo/internal/ctxlog"
)

func TestPolicy_Judge(t *testing.T) {
	p := Policy{SuccessCodes: []int{0, 2}}

	assert.True(t, p.Judge(Status(2)).Success)
	assert.True(t, p.Judge(Status(0)).Success)
	assert.False(t, p.Judge(Status(1)).Success)
	assert.False(t, p.Judge(StatusErr(0, errors.New("could not start"))).Success)

	// Non-status outcomes pass through untouched.
	assert.True(t, p.Judge(OK()).Success)
	assert.False(t, p.Judge(Failf("boom")).Success)
}

func TestPolicy_DefaultCodes(t *testing.T) {
	p := PolicyFor(&config.Call{Type: "exec", FailOnError: true})
	assert.True(t, p.FailOnError)
	assert.Equal(t, []int{0}, p.SuccessCodes)
	assert.True(t, p.Accepts(0))
	assert.False(t, p.Accepts(2))

	assert.True(t, Policy{}.Accepts(0))
}

// recorder is a RunFunc that records argument lists and fails for any
// invocation whose last argument is listed in failFor.
type recorder struct {
	calls   [][]string
	failFor map[string]bool
}

func (r *recorder) run(_ context.Context, args []string) Outcome {
	r.calls = append(r.calls, args)
	if r.failFor[args[len(args)-1]] {
		return Status(1)
	}
	return Status(0)
}

func TestFanOut_ContinuesWithoutFailOnError(t *testing.T) {
	ctx := ctxlog.Discard(context.Background())
	rec := &recorder{failFor: map[string]bool{"x": true}}

	o := FanOut(ctx, Policy{}, []string{"x", "y"}, []string{"cmd", "-v"}, rec.run)

	assert.Equal(t, [][]string{{"cmd", "-v", "x"}, {"cmd", "-v", "y"}}, rec.calls)
	assert.False(t, o.Success)
	require.Len(t, o.Files, 2)
	assert.False(t, o.Files[0].Outcome.Success)
	assert.True(t, o.Files[1].Outcome.Success)
	assert.ErrorContains(t, o.Err, "x: failed (status 1)")
}

func TestFanOut_StopsWithFailOnError(t *testing.T) {
	ctx := ctxlog.Discard(context.Background())
	rec := &recorder{failFor: map[string]bool{"x": true}}

	o := FanOut(ctx, Policy{FailOnError: true}, []string{"x", "y"}, nil, rec.run)

	assert.Equal(t, [][]string{{"x"}}, rec.calls)
	assert.False(t, o.Success)
	assert.Len(t, o.Files, 1)
}

func TestFanOut_SuccessCodesPerFile(t *testing.T) {
	ctx := ctxlog.Discard(context.Background())
	rec := &recorder{failFor: map[string]bool{"x": true}}

	o := FanOut(ctx, Policy{SuccessCodes: []int{0, 1}}, []string{"x", "y"}, nil, rec.run)
	assert.True(t, o.Success)
	assert.NoError(t, o.Err)
}

func TestFanOut_NoFilesIsSuccess(t *testing.T) {
	ctx := ctxlog.Discard(context.Background())
	rec := &recorder{}

	o := FanOut(ctx, Policy{}, nil, []string{"cmd"}, rec.run)
	assert.True(t, o.Success)
	assert.Empty(t, rec.calls)
}

func TestFileset_Apply(t *testing.T) {
	ctx := ctxlog.Discard(context.Background())
	root := t.TempDir()
	for _, name := range []string{"a.txt", "b.txt", "c.md"} {
		require.NoError(t, os.WriteFile(filepath.Join(root, name), nil, 0644))
	}

	t.Run("without patterns runs once", func(t *testing.T) {
		var fs Fileset
		rec := &recorder{}
		o := fs.Apply(ctx, root, Policy{}, []string{"lint"}, rec.run)
		assert.True(t, o.Success)
		assert.Equal(t, [][]string{{"lint"}}, rec.calls)
	})

	t.Run("with patterns fans out", func(t *testing.T) {
		var fs Fileset
		require.NoError(t, fs.SetFileset([]string{"*.txt"}))
		rec := &recorder{}
		o := fs.Apply(ctx, root, Policy{}, []string{"lint"}, rec.run)
		assert.True(t, o.Success)
		require.Len(t, rec.calls, 2)
		assert.True(t, strings.HasSuffix(rec.calls[0][1], "a.txt"))
		assert.True(t, strings.HasSuffix(rec.calls[1][1], "b.txt"))
	})

	t.Run("empty pattern is rejected", func(t *testing.T) {
		var fs Fileset
		assert.Error(t, fs.SetFileset([]string{""}))
	})
}

func TestOutcome_Describe(t *testing.T) {
	assert.Equal(t, "succeeded", OK().Describe())
	assert.Equal(t, "failed (status 3)", Status(3).Describe())
	assert.Equal(t, "failed: boom", Failf("boom").Describe())
	assert.Equal(t, "succeeded (status 0)", Policy{}.Judge(Status(0)).Describe())
}
