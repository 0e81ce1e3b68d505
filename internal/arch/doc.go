// Package arch holds architectural constraint tests that keep the
// configuration/classification core free of adapter dependencies.
package arch
