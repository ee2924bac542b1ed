// Package topo defines the B-rep topology model: shared topology
// records (TShape), located shape occurrences (Shape), hierarchy
// exploration with location composition, and the transient
// triangulation side tables attached by meshers.
package topo
