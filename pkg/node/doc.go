/*
Package node defines the behavior-tree node contract and the built-in control
nodes.

Every node exposes a label, a child-count constraint, an ordered list of
exclusively owned children, a parameter table and a Tick operation returning a
domain.Status. Concrete nodes embed Base and implement Type and Tick.

# Parameters

Parameters are resolved at tick time by GetParam. A string value starting with
"$" is an indirection: the rest of the string names a blackboard key, looked up
in the local scope and then in the global one. When neither scope holds the
key the literal "$key" string is returned, not the caller's fallback.

# State

Several nodes keep mutable fields between ticks (Limiter counters, the
running-child index of SequenceStar). This is safe because a node instance
occupies exactly one position in exactly one tree. Sharing instances across
agents would require keying that state by actor.
*/
package node
