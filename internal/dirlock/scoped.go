package dirlock

// With acquires the lock on dir, runs fn, and releases the lock on
// every exit path. Release happens even when fn returns an error; the
// fn error takes precedence over a release error.
func With(dir string, fn func() error, opts ...Option) (err error) {
	l := New(dir, opts...)
	if err := l.Lock(); err != nil {
		return err
	}
	defer func() {
		if uerr := l.Unlock(); uerr != nil && err == nil {
			err = uerr
		}
	}()
	return fn()
}

// WithKeep acquires the lock on dir and runs fn, but on success leaves
// the lock held and hands the still-held handle to the caller, who must
// eventually call Unlock. If fn fails, the lock is released before the
// error is returned and the handle is nil.
//
// This is the hand-off form for callers that want to do scoped setup
// under the lock and then keep holding it for follow-up work.
func WithKeep(dir string, fn func() error, opts ...Option) (*DirLock, error) {
	l := New(dir, opts...)
	if err := l.Lock(); err != nil {
		return nil, err
	}
	if err := fn(); err != nil {
		_ = l.Unlock()
		return nil, err
	}
	return l, nil
}
