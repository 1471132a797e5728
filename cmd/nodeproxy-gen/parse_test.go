package main

import (
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/nodeproxy/nodeproxy-go/pkg/model"
)

// schemaPath returns the absolute path to schema/types.yaml relative to this test file.
func schemaPath(t *testing.T) string {
	t.Helper()
	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine test file path")
	}
	return filepath.Join(filepath.Dir(thisFile), "..", "..", "schema", "types.yaml")
}

func TestParseSchema_Minimal(t *testing.T) {
	yaml := `
types:
  - name: BaseObjectType
    id: 58
    class: Object
    abstract: true
  - name: PumpType
    id: 1001
    class: Object
    parent: BaseObjectType
    description: "A pump"
    attributes:
      - name: Speed
        type: float64
        access: RW
      - name: Alarms
        type: string
        rank: 1
`
	s, err := ParseSchema([]byte(yaml))
	if err != nil {
		t.Fatalf("ParseSchema failed: %v", err)
	}

	if s.Package != "types" {
		t.Errorf("package = %q, want types", s.Package)
	}
	if s.Namespace != model.NamespaceStandard {
		t.Errorf("namespace = %q, want %q", s.Namespace, model.NamespaceStandard)
	}
	if len(s.Types) != 2 {
		t.Fatalf("types = %d, want 2", len(s.Types))
	}

	pump, ok := s.Type("PumpType")
	if !ok {
		t.Fatal("PumpType not found")
	}
	if pump.Parent != "BaseObjectType" {
		t.Errorf("parent = %q, want BaseObjectType", pump.Parent)
	}
	if len(pump.Attributes) != 2 {
		t.Fatalf("attributes = %d, want 2", len(pump.Attributes))
	}
	if pump.Attributes[0].Rank != nil {
		t.Errorf("Speed rank = %d, want unset", *pump.Attributes[0].Rank)
	}
	if r := pump.Attributes[1].Rank; r == nil || *r != 1 {
		t.Errorf("Alarms rank = %v, want 1", r)
	}
}

func TestParseSchema_Errors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name: "duplicate name",
			yaml: `
types:
  - {name: A, id: 1, class: Object}
  - {name: A, id: 2, class: Object}
`,
			wantErr: "duplicate type A",
		},
		{
			name: "duplicate id",
			yaml: `
types:
  - {name: A, id: 1, class: Object}
  - {name: B, id: 1, class: Object}
`,
			wantErr: "share id 1",
		},
		{
			name: "unknown class",
			yaml: `
types:
  - {name: A, id: 1, class: Gadget}
`,
			wantErr: "unknown node class",
		},
		{
			name: "unknown parent",
			yaml: `
types:
  - {name: A, id: 1, class: Object, parent: Missing}
`,
			wantErr: "unknown parent Missing",
		},
		{
			name: "unknown member type",
			yaml: `
types:
  - name: A
    id: 1
    class: Object
    members:
      - {name: Child, type: Missing}
`,
			wantErr: "member Child has unknown type Missing",
		},
		{
			name: "parent cycle",
			yaml: `
types:
  - {name: A, id: 1, class: Object, parent: B}
  - {name: B, id: 2, class: Object, parent: A}
`,
			wantErr: "parent cycle",
		},
		{
			name: "unknown data type",
			yaml: `
types:
  - name: A
    id: 1
    class: Object
    attributes:
      - {name: X, type: decimal}
`,
			wantErr: "unknown data type",
		},
		{
			name: "unknown intrinsic",
			yaml: `
types:
  - name: A
    id: 1
    class: Object
    attributes:
      - {name: Speed, type: float64, intrinsic: true}
`,
			wantErr: "unknown intrinsic attribute Speed",
		},
		{
			name: "invalid rank",
			yaml: `
types:
  - name: A
    id: 1
    class: Object
    attributes:
      - {name: X, type: string, rank: -4}
`,
			wantErr: "invalid rank -4",
		},
		{
			name: "invalid access",
			yaml: `
types:
  - name: A
    id: 1
    class: Object
    attributes:
      - {name: X, type: string, access: readOnly}
`,
			wantErr: "invalid access",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSchema([]byte(tt.yaml))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want substring %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadSchema_Standard(t *testing.T) {
	s, err := LoadSchema(schemaPath(t))
	if err != nil {
		t.Fatalf("LoadSchema failed: %v", err)
	}

	if len(s.Types) != 15 {
		t.Errorf("types = %d, want 15", len(s.Types))
	}

	server, ok := s.Type("ServerType")
	if !ok {
		t.Fatal("ServerType not found")
	}
	if server.ID != 2004 {
		t.Errorf("ServerType id = %d, want 2004", server.ID)
	}
	if len(server.Members) != 3 {
		t.Errorf("ServerType members = %d, want 3", len(server.Members))
	}

	base, ok := s.Type("BaseVariableType")
	if !ok {
		t.Fatal("BaseVariableType not found")
	}
	var value *RawAttributeDef
	for i := range base.Attributes {
		if base.Attributes[i].Name == "Value" {
			value = &base.Attributes[i]
		}
	}
	if value == nil || !value.Intrinsic {
		t.Fatal("BaseVariableType.Value should be intrinsic")
	}
}

func TestLoadSchema_MissingFile(t *testing.T) {
	_, err := LoadSchema(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected error")
	}
}
