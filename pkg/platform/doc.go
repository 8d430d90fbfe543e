// Package platform is the thin client for the hosted backend the inspection
// app runs against. It exposes the three collaborators the session layer
// consumes — session lookup, role-lookup RPC, and the auth-state change feed
// — behind the Client interface so tests and alternative transports can
// substitute fakes.
//
// The contract is deliberately narrow: one attempt per call, no retries, and
// no interpretation of backend errors beyond status classification. Timeout
// racing and fallback policy belong to the consuming packages (rolecache,
// sessiongate), not to the transport.
package platform
