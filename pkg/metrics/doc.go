// Package metrics exposes engine measurements in Prometheus format.
//
// Each Metrics owns its registry so several engines (and tests) can coexist
// in one process. Serve it with Handler.
package metrics
