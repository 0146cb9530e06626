// Package leaf provides the built-in terminal nodes.
//
// Leaves act on the blackboard and on the opaque actor handed to Tick.
// Game-specific behavior plugs in through Command and Sense, which delegate to
// actors implementing Commander and Sensor.
package leaf
