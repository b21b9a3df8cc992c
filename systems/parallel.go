package systems

import (
	"runtime"
	"sync"
)

// DefaultBatchWidth is the reference number of batches per parallel pass.
const DefaultBatchWidth = 16

// DefaultSerialThreshold is the particle count below which a pass runs on the
// calling goroutine. Below this, goroutine handoff costs more than it saves.
const DefaultSerialThreshold = 256

// Batch is a half-open particle index range [Start, End).
type Batch struct {
	Start, End int
}

// Partition splits [0, n) into width contiguous batches of n/width particles.
// The last batch absorbs the remainder. When n < width, n single-particle
// batches are produced. The result depends only on n and width.
func Partition(n, width int) []Batch {
	return PartitionInto(nil, n, width)
}

// PartitionInto is Partition appending into dst[:0].
func PartitionInto(dst []Batch, n, width int) []Batch {
	dst = dst[:0]
	if n <= 0 {
		return dst
	}
	if width < 1 {
		width = 1
	}
	if width > n {
		width = n
	}
	size := n / width
	for b := 0; b < width; b++ {
		start := b * size
		end := start + size
		if b == width-1 {
			end = n
		}
		dst = append(dst, Batch{Start: start, End: end})
	}
	return dst
}

// batchJob is one batch descriptor sent to a worker.
type batchJob struct {
	batch Batch
	fn    func(start, end int)
}

// BatchExecutor runs a per-index function over [0, n) on a persistent pool of
// worker goroutines. Every call to Run is a fork-join: it returns only after
// all batches have completed, so consecutive Runs never overlap.
//
// Each batch writes only to its own index range; Run itself provides the
// barrier between passes. Run must not be called concurrently.
type BatchExecutor struct {
	width     int
	threshold int
	batches   []Batch

	// Worker pool channels
	workChan chan batchJob  // sends batches to workers
	doneChan chan struct{}  // workers signal completion
	stopChan chan struct{}  // signals workers to exit
	wg       sync.WaitGroup // tracks active workers
	running  bool
}

// NewBatchExecutor creates an executor splitting work into width batches.
// width <= 0 uses GOMAXPROCS. Passes over fewer than threshold indices run
// inline on the caller.
func NewBatchExecutor(width, threshold int) *BatchExecutor {
	if width <= 0 {
		width = runtime.GOMAXPROCS(0)
	}
	if threshold < 0 {
		threshold = 0
	}
	return &BatchExecutor{
		width:     width,
		threshold: threshold,
		batches:   make([]Batch, 0, width),
	}
}

// Width returns the number of batches per pass.
func (e *BatchExecutor) Width() int { return e.width }

// Run calls fn once per batch of [0, n) and waits for all calls to return.
func (e *BatchExecutor) Run(n int, fn func(start, end int)) {
	if n <= 0 {
		return
	}
	if n < e.threshold || e.width == 1 {
		fn(0, n)
		return
	}
	if !e.running {
		e.start()
	}

	e.batches = PartitionInto(e.batches, n, e.width)
	for _, b := range e.batches {
		e.workChan <- batchJob{batch: b, fn: fn}
	}
	// Join: every batch must finish before the next pass reads its output.
	for range e.batches {
		<-e.doneChan
	}
}

// start launches the worker goroutines.
func (e *BatchExecutor) start() {
	e.workChan = make(chan batchJob, e.width)
	e.doneChan = make(chan struct{}, e.width)
	e.stopChan = make(chan struct{})
	e.running = true

	for i := 0; i < e.width; i++ {
		e.wg.Add(1)
		go e.worker()
	}
}

// worker processes batches until stopped.
func (e *BatchExecutor) worker() {
	defer e.wg.Done()
	for {
		select {
		case <-e.stopChan:
			return
		case job, ok := <-e.workChan:
			if !ok {
				return
			}
			job.fn(job.batch.Start, job.batch.End)
			e.doneChan <- struct{}{}
		}
	}
}

// Close stops the workers and waits for them to exit. The executor restarts
// its pool if Run is called again.
func (e *BatchExecutor) Close() {
	if !e.running {
		return
	}
	close(e.stopChan)
	e.wg.Wait()
	close(e.workChan)
	close(e.doneChan)
	e.running = false
}
