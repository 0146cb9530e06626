// Package builder turns declarative node specs into executable trees and back.
//
// Build resolves every "type" through a registry, overlays the spec's
// parameters on the type defaults and wraps the result in a synthetic
// node.Root labelled with the tree name. Problems are never fatal: unknown
// types are dropped and excess children are kept, each with a Warning.
//
// Serialize is the inverse. It skips the synthetic root, so
//
//	b.Serialize(b.Build(name, b.Serialize(root)))
//
// yields the same spec as b.Serialize(root).
package builder
