package orderedjson

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestParse_PreservesKeyOrder(t *testing.T) {
	v, err := Parse([]byte(`{"zulu":1,"alpha":2,"mike":3}`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	obj, ok := v.(Object)
	if !ok {
		t.Fatalf("Parse() = %T, want Object", v)
	}

	want := []string{"zulu", "alpha", "mike"}
	if len(obj) != len(want) {
		t.Fatalf("len(obj) = %d, want %d", len(obj), len(want))
	}
	for i, key := range want {
		if obj[i].Key != key {
			t.Errorf("obj[%d].Key = %q, want %q", i, obj[i].Key, key)
		}
	}
}

func TestParse_DuplicateKeys(t *testing.T) {
	// First position, last value.
	v, err := Parse([]byte(`{"a":1,"b":2,"a":3}`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	obj := v.(Object)
	if len(obj) != 2 {
		t.Fatalf("len(obj) = %d, want 2", len(obj))
	}
	if obj[0].Key != "a" || obj[0].Value.(json.Number).String() != "3" {
		t.Errorf("obj[0] = %+v, want a=3", obj[0])
	}
	if obj[1].Key != "b" {
		t.Errorf("obj[1].Key = %q, want %q", obj[1].Key, "b")
	}
}

func TestParse_Scalars(t *testing.T) {
	tests := []struct {
		input string
		want  any
	}{
		{`"hello"`, "hello"},
		{`42`, json.Number("42")},
		{`-1.5e3`, json.Number("-1.5e3")},
		{`true`, true},
		{`false`, false},
		{`null`, nil},
	}

	for _, tt := range tests {
		v, err := Parse([]byte(tt.input))
		if err != nil {
			t.Errorf("Parse(%q) error = %v", tt.input, err)
			continue
		}
		if v != tt.want {
			t.Errorf("Parse(%q) = %v, want %v", tt.input, v, tt.want)
		}
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []string{
		``,
		`{`,
		`{"a":}`,
		`[1,2`,
		`{"a":1}garbage`,
		`tru`,
	}

	for _, input := range tests {
		if _, err := Parse([]byte(input)); err == nil {
			t.Errorf("Parse(%q) error = nil, want error", input)
		}
	}
}

func TestParse_TrailingData(t *testing.T) {
	_, err := Parse([]byte(`{} {}`))
	if !errors.Is(err, ErrTrailingData) {
		t.Errorf("Parse() error = %v, want ErrTrailingData", err)
	}
}

func TestMarshalCompact(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`{ "a" : 1 , "b" : [ 1 , 2 ] }`, `{"a":1,"b":[1,2]}`},
		{`{}`, `{}`},
		{`[]`, `[]`},
		{`{"name":"Модуль","n":5}`, `{"name":"Модуль","n":5}`},
		{`"tab\there"`, `"tab\there"`},
		{`1.50`, `1.50`},
	}

	for _, tt := range tests {
		v, err := Parse([]byte(tt.input))
		if err != nil {
			t.Fatalf("Parse(%q) error = %v", tt.input, err)
		}
		got, err := MarshalCompact(v)
		if err != nil {
			t.Fatalf("MarshalCompact() error = %v", err)
		}
		if string(got) != tt.want {
			t.Errorf("MarshalCompact(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestMarshalIndent(t *testing.T) {
	v, err := Parse([]byte(`{"a":1,"b":[1,{"c":2}],"d":{}}`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	got, err := MarshalIndent(v)
	if err != nil {
		t.Fatalf("MarshalIndent() error = %v", err)
	}

	want := "{\n \"a\":1,\n \"b\":[\n  1,\n  {\n   \"c\":2\n  }\n ],\n \"d\":{}\n}"
	if string(got) != want {
		t.Errorf("MarshalIndent() = %q, want %q", got, want)
	}
}

func TestMarshal_ControlCharacters(t *testing.T) {
	v, err := Parse([]byte(`"a\u0001b"`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	got, err := MarshalCompact(v)
	if err != nil {
		t.Fatalf("MarshalCompact() error = %v", err)
	}
	if string(got) != `"a\u0001b"` {
		t.Errorf("MarshalCompact() = %q, want %q", got, `"a\u0001b"`)
	}
}

func TestObject_Get(t *testing.T) {
	v, _ := Parse([]byte(`{"a":1,"b":"two"}`))
	obj := v.(Object)

	if got, ok := obj.Get("b"); !ok || got != "two" {
		t.Errorf(`Get("b") = %v, %v; want "two", true`, got, ok)
	}
	if _, ok := obj.Get("missing"); ok {
		t.Error(`Get("missing") ok = true, want false`)
	}
}

func TestRoundTrip_KeyOrder(t *testing.T) {
	input := `{"z":{"y":1,"x":2},"a":[{"q":1,"p":2}]}`

	v, err := Parse([]byte(input))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	compact, err := MarshalCompact(v)
	if err != nil {
		t.Fatalf("MarshalCompact() error = %v", err)
	}
	if string(compact) != input {
		t.Errorf("round trip = %q, want %q", compact, input)
	}
}
