// Package generic provides a set of type agnostic helpers.
package generic
