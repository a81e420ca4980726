// Package async provides small generic helpers for running computations
// concurrently and waiting for their completion.
//
// Async starts a function in its own goroutine and returns a *Future. The
// caller waits with Await, bounds the wait with AwaitWithTimeout, or polls
// with IsComplete. AllSettled waits for a group of futures and reports every
// outcome, which suits fan-out calls whose failures must be reported one by
// one.
//
// A pre-cancelled context completes the future with the context error
// without calling the function. A panic inside the function completes the
// future with an error wrapping ErrPanicked instead of crashing the process.
//
//	futures := make([]*async.Future[bool], len(ids))
//	for i, id := range ids {
//	    futures[i] = async.Async(ctx, id, exists)
//	}
//	for i, s := range async.AllSettled(futures...) {
//	    if s.Err != nil {
//	        log.Printf("check %s failed: %v", ids[i], s.Err)
//	    }
//	}
package async
