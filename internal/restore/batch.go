package restore

import "fmt"

// Batcher groups statements and executes them as one unit once the batch
// size is reached. Statements always run in the order they were added, never
// reordered, even across batches. The error policy is run-wide: skip-errors
// logs per-statement failures and continues, otherwise the first failure
// aborts the run.
type Batcher struct {
	exec       Executor
	size       int
	skipErrors bool
	pending    []string
	executed   int64
}

func NewBatcher(exec Executor, size int, skipErrors bool) *Batcher {
	if size <= 0 {
		size = 1
	}
	return &Batcher{exec: exec, size: size, skipErrors: skipErrors}
}

// Add queues a statement, flushing when the batch fills.
func (b *Batcher) Add(stmt string) error {
	b.pending = append(b.pending, stmt)
	if len(b.pending) >= b.size {
		return b.Flush()
	}
	return nil
}

// Flush executes everything pending.
func (b *Batcher) Flush() error {
	batch := b.pending
	b.pending = b.pending[:0]

	for _, stmt := range batch {
		if _, err := b.exec.Execute(stmt); err != nil {
			if b.skipErrors {
				log.Warnf("Skipping error in statement %s: %v", snippet(stmt), err)
				continue
			}
			return fmt.Errorf("statement %s failed: %w", snippet(stmt), err)
		}
		b.executed++
	}
	return nil
}

// Executed reports how many statements have run successfully so far.
func (b *Batcher) Executed() int64 {
	return b.executed
}

func snippet(stmt string) string {
	const max = 80
	if len(stmt) > max {
		return fmt.Sprintf("%q...", stmt[:max])
	}
	return fmt.Sprintf("%q", stmt)
}
