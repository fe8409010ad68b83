// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Interfaces
//
//   - CatalogLoader: Reads the landscape catalog (JSON file or bundled resource)
//   - DiscoveryClient: Fetches the server's authentication settings (HTTP)
//   - TokenExchanger: Trades an authorization code for tokens (OAuth 2.0)
//   - ShareChecker: Verifies a public share accepts its credentials (HTTP)
//   - ConfigStore: Application configuration (TOML)
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
