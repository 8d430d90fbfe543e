// Package redisconn establishes Redis connections with retry logic and
// readiness probing.
//
// Connect parses a connection URL, pings the server until it answers or the
// retry budget is exhausted, and returns a ready *redis.Client:
//
//	var cfg redisconn.Config
//	if err := config.Load(&cfg); err != nil {
//		log.Fatal(err)
//	}
//	client, err := redisconn.Connect(ctx, cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer client.Close()
//
// Healthcheck wraps an established client in a probe function suitable for
// periodic liveness checks:
//
//	probe := redisconn.Healthcheck(client)
//	if err := probe(ctx); err != nil {
//		// connection lost
//	}
package redisconn
