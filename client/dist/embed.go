// Package clientdist embeds the thin client served to browsers.
package clientdist

import _ "embed"

// ClientJS is the thin client. It is served at "/_app/client.js".
//
//go:embed client.js
var ClientJS []byte
