/*
Package session keeps per-visitor state for the web surface.

Each session is created on first use by a factory and every operation on it runs
under a per-session lock. Locks are reference counted so that idle sessions do
not pin memory, and can be backed by a distributed locker (see
pkg/adapters/redis) when several replicas serve the same visitors.
*/
package session
