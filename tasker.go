package tallybot

// Tasker submits score-update work to run outside the webhook request path.
// The production implementation is asynchronous so the webhook can acknowledge
// quickly (slack retries on slow responses); tests use SyncTasker to keep the
// core logic synchronous and assertable
type Tasker interface {
	Submit(task func())
}

// GoTasker runs every submitted task on its own goroutine. A task that fails
// is expected to log its own error; there is no retry
type GoTasker struct {
	Logger SLogger
}

// Submit starts the task on a new goroutine, recovering and logging panics so
// a misbehaving handler can't take the process down
func (gt GoTasker) Submit(task func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil && gt.Logger != nil {
				gt.Logger.Printf("background task panicked: %v", r)
			}
		}()

		task()
	}()
}

// SyncTasker runs submitted tasks inline before returning
type SyncTasker struct {
}

// Submit runs the task synchronously
func (st SyncTasker) Submit(task func()) {
	task()
}
