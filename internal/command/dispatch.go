package command

import (
	"strings"

	"golang.org/x/exp/slices"
)

// builder converts a command's remaining bulks (the command name already
// consumed) into a Command, or reports why it could not.
type builder func(args [][]byte) (Command, error)

// entry pairs a dispatch name with its builder. name is always uppercase;
// Lookup compares case-insensitively against it.
type entry struct {
	name  string
	build builder
}

// table is the static dispatch table, ASCII-case-insensitive on command
// name per spec.md §4.5. It is searched linearly with slices.IndexFunc
// rather than keyed by map because the command surface is small and fixed
// at compile time.
var table = []entry{
	{"PING", buildPing},
	{"COMMAND", buildCommandIntrospect},
	{"CONFIG", buildConfig},
	{"SET", buildSet},
	{"GET", buildGet},
	{"DEL", buildDel},
	{"MGET", buildMGet},
	{"MSET", buildMSet},
	{"EXISTS", buildExists},
	{"TYPE", buildType},
	{"STRLEN", buildStrLen},
	{"LPUSH", buildLPush},
	{"RPUSH", buildRPush},
	{"LPOP", buildLPop},
	{"RPOP", buildRPop},
	{"LLEN", buildLLen},
	{"LRANGE", buildLRange},
	{"SADD", buildSAdd},
	{"SMEMBERS", buildSMembers},
	{"SCARD", buildSCard},
}

// Build looks up name (any case) and, if found, builds a Command from args
// (the bulks following the command name). ok is false for an unrecognized
// command name, in which case the caller replies with the standard unknown
// command error and continues the connection per spec.md §4.6 step 2.
func Build(name string, args [][]byte) (cmd Command, ok bool, err error) {
	upper := strings.ToUpper(name)
	idx := slices.IndexFunc(table, func(e entry) bool { return e.name == upper })
	if idx < 0 {
		return nil, false, nil
	}
	cmd, err = table[idx].build(args)
	return cmd, true, err
}
