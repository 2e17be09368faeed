// Package metrics collects runtime memory statistics and exports benchmark
// results as Prometheus metrics in the node_exporter textfile format.
package metrics
