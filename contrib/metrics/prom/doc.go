// Package prom provides a MetricsCollector backed by the official Prometheus
// Go client.
//
// Use it when the host already exposes a prometheus.Registry; otherwise the
// lighter contrib/metrics/vm collector is usually enough.
//
//	reg := prometheus.NewRegistry()
//	collector, err := prom.New(prom.WithRegistry(reg), prom.WithNamespace("spacecraft"))
//	if err != nil {
//	    return err
//	}
//	rt, _ := radguard.New(radguard.WithMetrics(collector))
//	http.Handle("/metrics", collector.Handler())
//
// Series names match the vm collector: {namespace}_fault_detected_total{pattern},
// {namespace}_environment_change_total{from,to} and so on.
package prom
