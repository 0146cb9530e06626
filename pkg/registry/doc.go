// Package registry maps node type names to factories.
package registry
