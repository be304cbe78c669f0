// Package filestore persists a collection of records as one JSON array
// document. Every Load reads the whole file and every Save replaces it.
//
// Nothing is cached between calls and nothing is locked: two writers that
// load, modify and save the same collection concurrently race, and the
// later Save wins for the whole collection.
package filestore
