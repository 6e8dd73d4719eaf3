// Package azcli wraps the Azure CLI (az) for zip deployment.
//
// Deployment is delegated to the external az binary rather than the
// Azure SDK: zip deploy is a single management-plane call, and the az
// CLI already owns authentication (az login, managed identity, service
// principals) and subscription context. Reimplementing that surface in
// Go would duplicate configuration the user has already done.
//
// The invocation is synchronous and single-shot — no retry, no timeout
// beyond what the caller's context imposes. On failure, az's own stderr
// and exit code are surfaced verbatim so that callers see exactly what
// the tool reported (authentication, quota, network, bad names).
package azcli
