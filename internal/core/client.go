package core

import (
	"github.com/git-pkgs/adoptium/client"
)

// Type aliases so resolver code only needs to import core.
type (
	URLs      = client.URLs
	Query     = client.Query
	HTTPError = client.HTTPError
)

// Function aliases.
var (
	DefaultClient = client.DefaultClient
	NewURLs       = client.NewURLs
)
