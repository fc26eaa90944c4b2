package terminal

import "sync"

const outputChunkBuffer = 64

// outputWriter receives both stdout and stderr of a process. Using one
// comparable writer for both streams makes os/exec share a single pipe, so
// chunks keep their arrival order. Chunks are copied and handed to the
// session pump; writes after Close are discarded.
type outputWriter struct {
	mux    sync.Mutex
	closed bool
	chunks chan []byte
}

func newOutputWriter() *outputWriter {
	return &outputWriter{chunks: make(chan []byte, outputChunkBuffer)}
}

func (w *outputWriter) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	chunk := make([]byte, len(p))
	copy(chunk, p)
	w.mux.Lock()
	defer w.mux.Unlock()
	if w.closed {
		return len(p), nil
	}
	w.chunks <- chunk
	return len(p), nil
}

// Close ends the chunk stream
func (w *outputWriter) Close() {
	w.mux.Lock()
	defer w.mux.Unlock()
	if !w.closed {
		w.closed = true
		close(w.chunks)
	}
}
