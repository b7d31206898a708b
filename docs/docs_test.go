package docs

import (
	"encoding/json"
	"testing"

	"github.com/swaggo/swag"
)

func TestRegisteredDocIsValidJSON(t *testing.T) {
	raw, err := swag.ReadDoc(SwaggerInfo.InstanceName())
	if err != nil {
		t.Fatalf("ReadDoc: %v", err)
	}
	var doc struct {
		Swagger string                    `json:"swagger"`
		Paths   map[string]map[string]any `json:"paths"`
	}
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		t.Fatalf("rendered doc is not JSON: %v", err)
	}
	if doc.Swagger != "2.0" {
		t.Fatalf("swagger = %q", doc.Swagger)
	}
	for _, p := range []string{"/api/v1/remote/keys", "/api/v1/device/state", "/api/v1/device/bounds", "/api/v1/logs"} {
		if _, ok := doc.Paths[p]; !ok {
			t.Errorf("path %s missing from doc", p)
		}
	}
}
