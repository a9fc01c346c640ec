// Package server provides HTTP routing, middleware, and the HTTP transport for the MCP tool server.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with method filtering.
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
//
// # Transport
//
// [MCPHandler] mounts a stateless streamable HTTP MCP endpoint: every POST carries a complete JSON-RPC request and
// receives its response, with no session kept between calls. [HealthHandler] answers liveness probes.
//
// [Server] owns the listener and shuts it down gracefully when its context is cancelled.
package server
