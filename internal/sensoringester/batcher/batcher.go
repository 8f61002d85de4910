package batcher

// Batcher groups items into fixed-size batches, handing each completed batch to the
// callback. Delivery is synchronous on the adding goroutine: a batch is always fully
// assembled in memory before it is handed over, and the next item is only accepted
// once the callback has returned. Batch order mirrors input order.
type Batcher[T any] struct {
	maxItems int
	callback func([]T) error
	buffer   []T
}

func NewBatcher[T any](maxItems int, callback func([]T) error) *Batcher[T] {
	return &Batcher[T]{
		maxItems: maxItems,
		callback: callback,
		buffer:   make([]T, 0, maxItems),
	}
}

// Add appends an item to the current batch, emitting the batch once it holds exactly
// maxItems. A callback error propagates to the caller and leaves the batcher empty.
func (b *Batcher[T]) Add(item T) error {
	b.buffer = append(b.buffer, item)
	if len(b.buffer) == b.maxItems {
		return b.emit()
	}
	return nil
}

// Flush emits any trailing partial batch. Call once at end-of-input.
func (b *Batcher[T]) Flush() error {
	if len(b.buffer) == 0 {
		return nil
	}
	return b.emit()
}

func (b *Batcher[T]) emit() error {
	batch := b.buffer
	b.buffer = make([]T, 0, b.maxItems)
	return b.callback(batch)
}
