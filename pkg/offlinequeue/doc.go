// Package offlinequeue captures mutations performed while the backend is
// unreachable and replays them in order once connectivity returns.
//
// Inspectors work in properties with poor connectivity; rather than failing
// their submissions, the app enqueues them as named operations with JSON
// payloads. A Flusher later drains the queue through a SubmitFunc, honoring
// a per-operation retry budget and dead-lettering operations that can never
// succeed. Replay order matches capture order, and a retryable failure stops
// the flush rather than reordering later operations past the failed one.
package offlinequeue
