// Package ingest is the entry point for new documents. It stores the
// document synchronously, enriched with a category, participants, and a
// best-effort event date, and schedules the queue handoff on a worker
// pool so ingestion latency stays flat regardless of queue health.
package ingest
