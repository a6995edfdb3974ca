// Package eventbus carries ExecutionEvents from the engine to observers:
// synchronous in-process handlers (logging, metrics) and a bounded
// channel for HTTP/SSE streaming consumers. Handlers run in registration
// order on the emitting goroutine; a panicking or erroring handler is
// isolated and never blocks the others.
package eventbus
