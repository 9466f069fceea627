package vault

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

func TestRegisteredDocumentListsRoutes(t *testing.T) {
	doc, err := swag.ReadDoc(SwaggerInfo.InstanceName())
	require.NoError(t, err)

	var spec struct {
		Paths map[string]map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(doc), &spec))

	for path, method := range map[string]string{
		"/v1/auth/login":                "post",
		"/v1/auth/2fa/disable":          "post",
		"/v1/accounts/{id}/code":        "get",
		"/v1/accounts/{id}/code/stream": "get",
		"/v1/accounts/export":           "get",
		"/v1/accounts/reorder":          "post",
		"/v1/groups/{id}":               "delete",
		"/readyz":                       "get",
	} {
		require.Contains(t, spec.Paths, path)
		require.Contains(t, spec.Paths[path], method, path)
	}
}
