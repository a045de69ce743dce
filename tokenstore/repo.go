// Package tokenstore persists the dashboard's access token between runs.
package tokenstore

// Repo stores a single access token under a fixed key.
type Repo interface {
	// Get returns the stored token, or "" when none is stored.
	Get() (string, error)
	Set(token string) error
	// Delete removes the token. Deleting an absent token is not an error.
	Delete() error
}
