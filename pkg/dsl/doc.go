/*
Package dsl provides a Go DSL (Domain Specific Language) for programmatically constructing Arbor trees.

It allows developers to define behavior trees using a fluent builder pattern
instead of relying on external YAML or JSON files. This is particularly useful
for dynamic tree generation, unit testing, and leveraging IDE autocompletion.

Example usage:

	package main

	import (
		"github.com/aretw0/arbor/pkg/dsl"
	)

	func main() {
		guard := dsl.Node("Select").Label("root").Children(
			dsl.Node("BlackboardHas").Param("key", "target"),
			dsl.Node("DebugPrint").Param("message", "no target"),
		)

		// The resulting spec can be built directly or serialized to YAML/JSON.
		spec := guard.Spec()
		// ... pass spec to engine.Build(ctx, "guard", spec)
	}
*/
package dsl
