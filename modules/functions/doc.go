// Package functions exposes the edge endpoints under /functions/v1: checkout
// creation, email domain verification, and subscription status bootstrap.
package functions
