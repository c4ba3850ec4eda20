package logs

// Hook is fired after a call on namespace at level has been forwarded to a
// sink. The call must not block.
type Hook interface {
	Fire(namespace string, level Level) error
}

// HookFunc adapts an ordinary function to the [Hook] interface.
type HookFunc func(namespace string, level Level) error

// Fire implements [Hook].
func (fn HookFunc) Fire(namespace string, level Level) error {
	return fn(namespace, level)
}
