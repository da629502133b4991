// Package kernel contains value objects shared by every aggregate of the
// bondi domain, currently the aggregate identifier ID.
package kernel
