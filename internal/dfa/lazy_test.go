package dfa

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wordmask/wordmask/internal/types"
)

func TestLazy_BuildsOnceUnderConcurrency(t *testing.T) {
	var calls atomic.Int32
	l := NewLazy(func() ([]string, error) {
		calls.Add(1)
		return []string{"套现"}, nil
	})

	var wg sync.WaitGroup
	filters := make([]*Filter, 16)
	for i := range filters {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			f, err := l.Get()
			if err != nil {
				t.Error(err)
				return
			}
			filters[i] = f
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for _, f := range filters {
		assert.Same(t, filters[0], f)
	}
	assert.Equal(t, []string{"套现"}, filters[0].Find("马上套现", types.ShortestMatch))
}

func TestLazy_RemembersLoadError(t *testing.T) {
	boom := errors.New("boom")
	var calls int
	l := NewLazy(func() ([]string, error) {
		calls++
		return nil, boom
	})
	_, err := l.Get()
	require.ErrorIs(t, err, boom)
	f, err := l.Get()
	require.ErrorIs(t, err, boom)
	assert.Nil(t, f)
	assert.Equal(t, 1, calls)
}
