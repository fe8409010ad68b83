// Package file provides the TOML-backed configuration store.
//
// Values live in ~/.cmislogin/config.toml by default and can be overridden
// per key with CMISLOGIN_* environment variables.
package file
