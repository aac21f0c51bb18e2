// Package reembed rebuilds the embedding vectors of every stored chunk.
//
// Switching embedding models invalidates every vector in the database,
// because query vectors and stored vectors must come from the same model
// for cosine similarity to mean anything. This package sweeps all
// documents, re-embeds their chunk text with the configured embedder, and
// replaces each document's chunk set atomically, with progress reporting
// and retry on transient embedding failures.
package reembed
