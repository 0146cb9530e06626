/*
Package agent hosts running trees on behalf of agents.

Each agent owns a private tree instance and local blackboard; every agent
shares the global scope handed to the Manager. Ticks for one agent are
serialized with a reference-counted mutex and, optionally, a distributed
lock, so different agents may be ticked from different goroutines or
replicas. After every tick the local blackboard is saved as a
domain.Snapshot, from which an agent is restored on demand.
*/
package agent
