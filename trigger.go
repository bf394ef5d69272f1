package viscm

// trigger is a minimal synchronous observer list. Callbacks run in
// registration order, on the goroutine that fires, before the firing
// mutation returns. Mutations never happen from inside a callback, so no
// reentrancy guard is needed.
type trigger struct {
	callbacks []func()
}

func (tr *trigger) watch(fn func()) {
	tr.callbacks = append(tr.callbacks, fn)
}

func (tr *trigger) fire() {
	for _, fn := range tr.callbacks {
		fn()
	}
}
