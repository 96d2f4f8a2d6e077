package tree

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"context"
	"runtime"
	"sync"

	"golang.org/x/sync/semaphore"
)

// Tree operations will be carried out by concurrent worker goroutines.
// Sibling subtrees are forked off to new goroutines as long as a worker
// token is available; otherwise they are processed by the current goroutine.
// A parent is always joined with all of its children before it is processed
// itself. This way the number of concurrently active workers is bounded,
// while a traversal never blocks waiting for a free worker.
//
// A panic in a worker goroutine is caught and re-raised on the goroutine
// joining the worker.

// Minimum and maximum number of concurrent workers for a tree operation.
const (
	minWorkerCount int = 3
	maxWorkerCount int = 10
)

// DefaultWorkerCount is the number of workers used if a client does not
// specify one: the number of CPUs, clamped to [3…10].
func DefaultWorkerCount() int {
	n := runtime.NumCPU()
	if n > maxWorkerCount {
		n = maxWorkerCount
	} else if n < minWorkerCount {
		n = minWorkerCount
	}
	return n
}

// ForkJoin is a budget of worker goroutines for tree operations.
// A ForkJoin may be shared between concurrent tree operations.
type ForkJoin struct {
	sem     *semaphore.Weighted
	workers int
}

// NewForkJoin creates a worker budget of n additional goroutines.
// n = 0 selects DefaultWorkerCount(); n < 0 will make every operation
// run sequentially on the caller's goroutine.
func NewForkJoin(n int) *ForkJoin {
	if n == 0 {
		n = DefaultWorkerCount()
	} else if n < 0 {
		n = 0
	}
	return &ForkJoin{sem: semaphore.NewWeighted(int64(n)), workers: n}
}

// Workers returns the number of additional worker goroutines.
func (fj *ForkJoin) Workers() int {
	if fj == nil {
		return 0
	}
	return fj.workers
}

func (fj *ForkJoin) tryFork() bool {
	return fj != nil && fj.workers > 0 && fj.sem.TryAcquire(1)
}

func (fj *ForkJoin) release() {
	fj.sem.Release(1)
}

// join collects the outcome of a group of forked tasks.
type join struct {
	wg        sync.WaitGroup
	mx        sync.Mutex
	err       error
	panicking bool
	panicVal  interface{}
}

func (j *join) record(err error, p interface{}, didPanic bool) {
	if err == nil && !didPanic {
		return
	}
	j.mx.Lock()
	defer j.mx.Unlock()
	if didPanic && !j.panicking {
		j.panicking, j.panicVal = true, p
	} else if err != nil && j.err == nil {
		j.err = err
	}
}

// run executes task, capturing its error and a possible panic.
func (j *join) run(task func() error) {
	didPanic := true
	var err error
	defer func() {
		var p interface{}
		if didPanic {
			p = recover()
		}
		j.record(err, p, didPanic)
	}()
	err = task()
	didPanic = false
}

// spawn runs a task either on a new goroutine, if fj has a free worker token,
// or on the current goroutine.
func (j *join) spawn(fj *ForkJoin, task func() error) {
	if !fj.tryFork() {
		j.run(task)
		return
	}
	j.wg.Add(1)
	go func() {
		defer j.wg.Done()
		defer fj.release()
		j.run(task)
	}()
}

// wait joins all spawned tasks and re-raises the first panic.
func (j *join) wait() error {
	j.wg.Wait()
	if j.panicking {
		panic(j.panicVal)
	}
	return j.err
}

// Postorder visits every node of the tree below (and including) root, children
// before parents. children returns the ordered children of a node, visit is
// called with a node and the results of visiting its children (in child order).
// The result of visiting root is returned.
//
// Sibling subtrees may be visited concurrently, limited by the worker budget
// of fj (nil is a legal ForkJoin and will run sequentially). visit must
// therefore be safe for concurrent calls for nodes of disjoint subtrees.
//
// ctx is checked before each node is visited; if it is done, the traversal
// is aborted and ctx.Err() is returned.
func Postorder[N, R any](ctx context.Context, fj *ForkJoin, root N, children func(N) []N,
	visit func(N, []R) R) (R, error) {
	//
	var result R
	err := postorder(ctx, fj, root, children, visit, &result)
	return result, err
}

func postorder[N, R any](ctx context.Context, fj *ForkJoin, node N, children func(N) []N,
	visit func(N, []R) R, result *R) error {
	//
	if err := ctx.Err(); err != nil {
		return err
	}
	kids := children(node)
	results := make([]R, len(kids))
	j := &join{}
	for i, kid := range kids {
		i, kid := i, kid
		task := func() error {
			return postorder(ctx, fj, kid, children, visit, &results[i])
		}
		if i == len(kids)-1 { // last child is always processed by the current worker
			j.run(task)
		} else {
			j.spawn(fj, task)
		}
	}
	if err := j.wait(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	*result = visit(node, results)
	return nil
}

// Each calls f for every item of a slice, possibly concurrently, and returns
// after all calls completed. The first error returned by f is returned.
func Each[N any](fj *ForkJoin, items []N, f func(int, N) error) error {
	j := &join{}
	for i, item := range items {
		i, item := i, item
		j.spawn(fj, func() error { return f(i, item) })
	}
	return j.wait()
}
