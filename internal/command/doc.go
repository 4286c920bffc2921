// Package command holds the per-command argument records (build/apply) and
// the dispatch table connecting a decoded request name to one of them, per
// spec.md §4.5 and §6.
package command
