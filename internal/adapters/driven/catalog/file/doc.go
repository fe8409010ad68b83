// Package file loads the landscape catalog from sdc.json documents.
//
// The catalog is looked up in the user's home directory, then in the
// working directory, and finally falls back to the copy bundled with the
// binary. A malformed document yields an empty catalog.
package file
