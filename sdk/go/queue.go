package overseer

// job is one queued POST.
type job struct {
	path    string
	payload any
}

// worker drains a bounded queue on a single goroutine, in submission order.
type worker struct {
	jobs chan job
	done chan struct{}
	send func(job)
}

// startWorker starts the background goroutine.
// Call stop exactly once to drain the queue and wait for it to exit.
func startWorker(size int, send func(job)) *worker {
	w := &worker{
		jobs: make(chan job, size),
		done: make(chan struct{}),
		send: send,
	}
	go w.run()
	return w
}

func (w *worker) run() {
	defer close(w.done)
	for j := range w.jobs {
		w.send(j)
	}
}

// offer enqueues j without blocking. Returns false if the queue is full.
func (w *worker) offer(j job) bool {
	select {
	case w.jobs <- j:
		return true
	default:
		return false
	}
}

// stop closes the queue and waits until every queued job has been sent.
func (w *worker) stop() {
	close(w.jobs)
	<-w.done
}
