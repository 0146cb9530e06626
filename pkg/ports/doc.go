/*
Package ports defines the driven ports (interfaces) for the Arbor engine.

These interfaces decouple the core logic from external implementations, allowing
trees to be loaded from various sources and agent state to live in various backends.

# Key Interfaces

  - TreeLoader: Responsible for loading raw tree documents (e.g., from files or Memory).
  - SnapshotStore: Responsible for persisting and loading per-agent Snapshots.
  - DistributedLocker: Provides distributed locking for handling concurrent agent access.
  - AgentRuntime: The agent operations exposed to driving adapters such as HTTP.
*/
package ports
