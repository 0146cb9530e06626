/*
Package arbor is a behavior-tree evaluation engine for driving autonomous agents.

A tree is authored as declarative data (JSON or YAML), built into a graph of
nodes through a registry of node types, and advanced one external tick at a
time. Every tick returns a Status: SUCCESS, FAILURE, RUNNING or ERROR.
RUNNING suspends work across ticks. Nodes share data through a Blackboard with
a local scope owned by one tree instance and a global scope shared by all.

# Concept

The engine never decides when to tick. The host owns the loop: it writes the
elapsed time under "delta" in the local scope and calls Tick on the tree.
Game-specific behavior plugs in through the Command and Sense leaves, which
delegate to the actor passed to Tick, or through custom node types added to
the registry.

# Key Features

  - Composites (Sequence, Select and their resuming Star variants), decorators
    (Inverter, Limiter, ClockLimiter, ...) and a library of blackboard,
    random, vector and expression leaves.
  - "$key" parameters resolved from the blackboard at tick time.
  - Lossless build/serialize round trip of the declarative form.
  - An agent manager persisting local blackboards to memory, files or Redis.

# Usage

	eng, err := arbor.New("./trees")
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	tree, err := eng.Load(ctx, "guard")
	if err != nil {
		log.Fatal(err)
	}

	bb := eng.NewBlackboard()
	for range time.Tick(100 * time.Millisecond) {
		bb.SetLocal("delta", 0.1)
		status := tree.Tick(ctx, actor, bb)
		log.Println(status)
	}
*/
package arbor
