package dfa

import "sync"

// Lazy compiles a Filter on first use. Concurrent first callers block until
// the single build finishes; afterwards every caller shares the same Filter.
// A failed load is not retried.
type Lazy struct {
	load   func() ([]string, error)
	once   sync.Once
	filter *Filter
	err    error
}

// NewLazy returns a Lazy that calls load once to obtain the dictionary.
func NewLazy(load func() ([]string, error)) *Lazy {
	return &Lazy{load: load}
}

// Get returns the compiled Filter or the error from the dictionary load.
func (l *Lazy) Get() (*Filter, error) {
	l.once.Do(func() {
		words, err := l.load()
		if err != nil {
			l.err = err
			return
		}
		l.filter = Compile(words)
	})
	return l.filter, l.err
}
