// Package vaultsdk holds the wire types of the credvault HTTP API and a
// small client for it.
//
// The server uses the same request and response types, so the client and
// the handlers cannot drift apart.
//
// Typical use:
//
//	c := vaultsdk.NewClient("http://localhost:8080")
//	if err := c.Login(ctx, "admin", password, code); err != nil {
//	    var apiErr *vaultsdk.APIError
//	    if errors.As(err, &apiErr) && apiErr.Require2FA {
//	        // prompt for a code and retry
//	    }
//	}
//	accounts, err := c.ListAccounts(ctx)
package vaultsdk
