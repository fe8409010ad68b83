// Package services implements the core login logic: endpoint resolution,
// the OAuth handshake and session parameter assembly.
//
// Services depend only on domain types and driven ports; network access
// happens behind driven.DiscoveryClient and driven.TokenExchanger.
package services
