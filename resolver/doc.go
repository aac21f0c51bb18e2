// Package resolver maps free-text project mentions extracted from meeting
// transcripts to canonical project records.
//
// Resolution is deliberately conservative: an exact name match wins, then
// an alias match, then a keyword overlap score above a minimum threshold.
// Anything weaker is left unresolved so that insights are never linked to
// the wrong project.
package resolver
