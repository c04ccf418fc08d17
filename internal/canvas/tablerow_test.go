package canvas

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestTableRow_UnmarshalPreservesKeyOrder(t *testing.T) {
	var r TableRow
	if err := json.Unmarshal([]byte(`{"weapon":"Axe","armor":"Mail","id":"r1"}`), &r); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	want := []string{"weapon", "armor", "id"}
	if !reflect.DeepEqual(r.Keys(), want) {
		t.Errorf("keys = %v, want %v", r.Keys(), want)
	}
	if r.Get("armor") != "Mail" {
		t.Errorf("armor = %q", r.Get("armor"))
	}
}

func TestTableRow_JSONRoundTrip(t *testing.T) {
	in := `{"zeta":"1","alpha":"2"}`
	var r TableRow
	if err := json.Unmarshal([]byte(in), &r); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	out, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != in {
		t.Errorf("round trip = %s, want %s", out, in)
	}
}

func TestTableRow_NonStringValuesKeptAsText(t *testing.T) {
	var r TableRow
	if err := json.Unmarshal([]byte(`{"count":3,"done":true,"note":null}`), &r); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if r.Get("count") != "3" || r.Get("done") != "true" {
		t.Errorf("count=%q done=%q", r.Get("count"), r.Get("done"))
	}
}

func TestRow_DuplicateKeyOverwrites(t *testing.T) {
	r := Row("a", "1", "a", "2")
	if r.Len() != 1 || r.Get("a") != "2" {
		t.Errorf("row = %v/%q", r.Keys(), r.Get("a"))
	}
}
