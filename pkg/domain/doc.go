/*
Package domain contains the core domain models of the Arbor behavior-tree engine.

It defines the values that flow between the builder, the nodes and the host:
tick results, the declarative node shape, persisted agent snapshots and the
events emitted around each tick. This package is kept pure and free of I/O and
persistence concerns.

# Key Entities

  - Status: The four-valued result of every tick (Success, Failure, Running, Error).
  - Spec: The declarative, serializable shape of a node and its children.
  - Snapshot: The persisted local blackboard of one agent.
  - Vector: The spatial value type used by vector leaves.
  - LifecycleHooks: Callbacks fired around builds and ticks.
*/
package domain
