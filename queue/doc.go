// Package queue drives documents through the asynchronous processing
// pipeline: classification gates what gets enqueued, workers claim pending
// items and run insight extraction and chunk embedding, and the retry
// policy decides what happens when a pass fails.
//
// The Service is the administrative surface (enqueue, backfill, stats,
// recovery sweeps); the Worker is the processing loop. Several workers may
// poll the same store concurrently; the storage layer's claim primitive
// guarantees no two of them ever hold the same item.
package queue
