/*
Package blackboard provides the two-scope key/value store that behavior-tree
nodes read and write while ticking.

The local scope is a plain map owned by one tree instance. It is not
synchronized: a single tree is ticked by a single goroutine at a time.

The global scope is an injected handle implementing Scope. Every blackboard
built with the same handle observes the same global entries, which makes the
sharing visible at the call site instead of hiding it in a process singleton.
Shared is the in-process implementation; the redis adapter provides one that
spans processes.

# Accessors

Local and Global assume presence and return an error wrapping
domain.ErrKeyNotFound when the key is missing. Tick logic must use the
non-failing LocalOr, GlobalOr, HasLocal and HasGlobal for optional data.
*/
package blackboard
