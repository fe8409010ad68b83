// Package domain defines the core entities of cmislogin.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Catalog: Landscape → Provider → Consumer hierarchy with URL templates
//   - LandscapeSelection: a predefined landscape or a custom URL
//   - OAuthServerConfig: the "oauth" entry of the discovery document
//   - SessionParameters: the flat configuration handed to the CMIS client
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
