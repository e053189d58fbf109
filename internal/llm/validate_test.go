package llm

import (
	"encoding/json"
	"testing"
)

func testSchema() *Schema {
	return &Schema{
		Name:        "test-object",
		Description: "A test object",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"name":  map[string]any{"type": "string"},
				"age":   map[string]any{"type": "integer", "minimum": 0},
				"grade": map[string]any{"type": "string", "enum": []any{"A", "B", "C"}},
				"tags":  map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
			},
			"required": []any{"name", "age"},
		},
	}
}

func TestValidateResponse(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"valid", `{"name":"Alice","age":10,"grade":"A"}`, false},
		{"optional omitted", `{"name":"Bob","age":8}`, false},
		{"array items", `{"name":"Cy","age":1,"tags":["x","y"]}`, false},
		{"missing required", `{"name":"Charlie"}`, true},
		{"wrong type", `{"name":"Dave","age":"ten"}`, true},
		{"below minimum", `{"name":"Dee","age":-1}`, true},
		{"bad enum", `{"name":"Eve","age":9,"grade":"D"}`, true},
		{"bad array item", `{"name":"Fay","age":9,"tags":[1]}`, true},
		{"malformed", `{not json}`, true},
		{"empty", ``, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateResponse(testSchema(), json.RawMessage(tt.raw))
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !isA[*InvalidResponseError](err) {
				t.Fatalf("err = %T (%v), want *InvalidResponseError", err, err)
			}
		})
	}
}

func TestValidateResponse_NilSchema(t *testing.T) {
	if err := validateResponse(nil, json.RawMessage(`not even json`)); err != nil {
		t.Fatalf("nil schema: %v", err)
	}
}

func TestCompileSchema_Cached(t *testing.T) {
	a, err := compileSchema(testSchema())
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	b, err := compileSchema(testSchema())
	if err != nil {
		t.Fatalf("compile again: %v", err)
	}
	if a != b {
		t.Error("schema compiled twice")
	}
}

func TestDecode(t *testing.T) {
	type person struct {
		Name string `json:"name"`
		Age  int    `json:"age"`
	}
	got, err := Decode[person](&Response{Content: json.RawMessage(`{"name":"Ann","age":4}`)})
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got.Name != "Ann" || got.Age != 4 {
		t.Errorf("got %+v", got)
	}

	if _, err := Decode[person](&Response{Content: json.RawMessage(`[]`)}); !isA[*InvalidResponseError](err) {
		t.Errorf("err = %v, want *InvalidResponseError", err)
	}
}
