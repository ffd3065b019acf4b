// providerchain
//
// Resolves a declarative credential chain - a single base credential source
// followed by zero or more assume-role hops - into an executable provider
// chain, then runs it sequentially to produce temporary AWS credentials.
//
// The base can be a named source looked up in a registry, a set of static
// access keys, or a web identity token file exchanged for role credentials.
// Each hop uses the credentials produced by the step directly before it,
// never anything earlier in the chain.
package providerchain
