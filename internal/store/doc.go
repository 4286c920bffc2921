// Package store implements the sharded, concurrent, typed key space: fixed
// shard array, per-shard RWMutex, and the string/list/set containers with
// the type-dispatch and WrongType semantics spec.md §3–§4.2 requires.
//
// A key maps to exactly one of three variants at a time — string, list, or
// set — represented internally as a tagged union (value.kind). List and set
// write commands that target a key holding a different variant fail with
// ErrWrongType and leave the stored value untouched; write commands against
// an absent key create an empty container of the required variant first.
// SET is the exception: it overwrites a value of any variant with a string.
package store
