// Package fetch provides the single-shot HTTP fetcher shared by both
// pipelines.
//
// Failure classification lives here, not in the pipelines:
//   - transport errors and timeouts
//   - non-2xx status codes
//   - provider rate-limit responses, detected by a configurable body
//     substring (some quote providers answer 200 with an error page)
//
// All three surface as *Error. The weightings pipeline treats any fetch
// error as fatal; the price pipeline skips the affected symbol and
// continues.
package fetch
