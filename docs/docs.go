// Package docs embeds the OpenAPI description of the control API.
package docs

import _ "embed"

//go:embed api/openapi.yaml
var OpenAPI []byte
