/*
Package console implements the page behavior of zconv: the Event Binder,
the Conversion Invoker, the History Fetcher and the Clear operation.

Every component receives its collaborators (API, regions, input) at
construction. Nothing looks elements up by name after binding, so any
ports.Document implementation can host them: an HTML page, a terminal or an
in-memory fake.

Handlers run synchronously when an event is dispatched and start their
network work on a separate goroutine, the way a browser handler returns
before its fetch resolves. Binder.Wait blocks until all such work is done.
*/
package console
