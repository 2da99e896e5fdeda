package worker

import (
	"runtime"

	"github.com/getsentry/sentry-go"
)

var queue = make(chan func(), runtime.NumCPU())

func init() {
	for i := 0; i < runtime.NumCPU(); i++ {
		go worker()
	}
}

func worker() {
	for f := range queue {
		run(f)
	}
}

// run calls f, reporting a panic to sentry instead of taking the worker down with it.
func run(f func()) {
	defer sentry.Recover()
	f()
}

// Submit queues f to be run by one of the workers. It blocks while every worker is busy and the queue is
// full. To be used by functions that may be CPU intensive, such as re-simulating a replay.
func Submit(f func()) {
	queue <- f
}

// Go queues f like Submit and returns a channel that is closed once f has returned or panicked.
func Go(f func()) <-chan struct{} {
	done := make(chan struct{})
	Submit(func() {
		defer close(done)
		f()
	})
	return done
}
