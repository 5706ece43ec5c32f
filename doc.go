// Package gqlhttp sends built GraphQL queries and mutations over HTTP and
// resolves the JSON response envelope into a typed Outcome.
//
//	type viewer struct {
//	    Login string `json:"login"`
//	}
//
//	op := gqlhttp.NewQuery[viewer](`query { viewer { login } }`)
//	gqlhttp.SendQuery("https://example.com/graphql", func(out gqlhttp.Outcome[viewer]) {
//	    if data, ok := out.Data(); ok {
//	        fmt.Println(data.Login)
//	    }
//	}, op)
//
// The package separates four concerns: encoding a document and its
// variables into a wire payload, selecting the transport shape (POST body,
// GET query string, or multipart upload), resolving the raw HTTP outcome
// into exactly one of five terminal states, and dispatching the exchange
// either fire-and-forget (a handler receives the Outcome) or deferred
// (a Task that performs no I/O until Run).
//
// The actual network call is owned by an Engine; the default engine wraps
// net/http. No retries happen inside this package and timeouts are passed
// through to the engine, never enforced locally.
package gqlhttp
