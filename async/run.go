// Package async runs blocking work off the calling goroutine.
package async

// Run calls f in a new goroutine and delivers its result on the returned channel. The channel is buffered, so the
// goroutine exits even if nobody ever receives.
func Run[T any](f func() T) <-chan T {
	result := make(chan T, 1)
	go func() {
		result <- f()
	}()
	return result
}
