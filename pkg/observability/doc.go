/*
Package observability exports client metrics in the Prometheus format.

Metrics implements ports.Observer, so it can be handed to the console and to the
API client to count requests by route and outcome, time them, and count the
responses dropped as stale.
*/
package observability
