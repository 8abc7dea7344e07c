package dimension

import (
	"errors"
	"reflect"
	"testing"

	"github.com/nktomer45/planboard/internal/domain"
)

func newTestRegistry() *Registry {
	r := NewRegistry(map[string][]domain.DimensionMember{
		"products": {
			{ID: "p1", Name: "Widget", Code: "WID"},
			{ID: "p2", Name: "Gadget", Code: "GAD"},
		},
		"Regions": {
			{Name: "North", Code: "N"},
		},
	})
	seq := 0
	r.newID = func() string {
		seq++
		return "id-" + string(rune('0'+seq))
	}
	return r
}

func TestRegistrySeed(t *testing.T) {
	r := newTestRegistry()

	if got := r.Kinds(); !reflect.DeepEqual(got, []string{"products", "regions"}) {
		t.Errorf("Kinds = %v", got)
	}
	regions := r.List("regions")
	if len(regions) != 1 || regions[0].ID == "" {
		t.Errorf("seeded region = %+v, want generated id", regions)
	}
	if got := r.Names("products"); !reflect.DeepEqual(got, []string{"Widget", "Gadget"}) {
		t.Errorf("Names = %v", got)
	}
	if got := r.List("unknown"); len(got) != 0 {
		t.Errorf("unknown kind = %v", got)
	}
}

func TestRegistryAdd(t *testing.T) {
	tests := []struct {
		name    string
		mName   string
		mCode   string
		wantErr error
	}{
		{"valid", "  Sprocket ", " SPR ", nil},
		{"missing name", "", "X", ErrInvalidMember},
		{"missing code", "Thing", "   ", ErrInvalidMember},
		{"duplicate name", "widget", "NEW", ErrDuplicateMember},
		{"duplicate code", "Brand new", "gad", ErrDuplicateMember},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRegistry()
			m, err := r.Add("products", tt.mName, tt.mCode)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if err != nil {
				if n := len(r.List("products")); n != 2 {
					t.Errorf("failed add changed member count to %d", n)
				}
				return
			}
			if m.ID != "id-1" || m.Name != "Sprocket" || m.Code != "SPR" {
				t.Errorf("member = %+v", m)
			}
			if got := r.List("products"); len(got) != 3 || got[2] != m {
				t.Errorf("members after add = %+v", got)
			}
		})
	}
}

func TestRegistryUpdate(t *testing.T) {
	r := newTestRegistry()

	m, err := r.Update("products", "p1", "Widget", "WID-2")
	if err != nil {
		t.Fatalf("update own code: %v", err)
	}
	if m.ID != "p1" || m.Code != "WID-2" {
		t.Errorf("updated = %+v", m)
	}

	if _, err := r.Update("products", "p1", "Gadget", "X"); !errors.Is(err, ErrDuplicateMember) {
		t.Errorf("rename onto other member: err = %v", err)
	}
	if _, err := r.Update("products", "missing", "A", "B"); !errors.Is(err, ErrMemberNotFound) {
		t.Errorf("missing id: err = %v", err)
	}
	if _, err := r.Update("products", "p1", "", "B"); !errors.Is(err, ErrInvalidMember) {
		t.Errorf("blank name: err = %v", err)
	}
}

func TestRegistryDelete(t *testing.T) {
	r := newTestRegistry()
	before := r.List("products")

	if err := r.Delete("products", "p1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if got := r.Names("products"); !reflect.DeepEqual(got, []string{"Gadget"}) {
		t.Errorf("after delete = %v", got)
	}
	if before[0].ID != "p1" {
		t.Error("List copy was modified by Delete")
	}
	if err := r.Delete("products", "p1"); !errors.Is(err, ErrMemberNotFound) {
		t.Errorf("second delete: err = %v", err)
	}
}

func TestCrossJoin(t *testing.T) {
	r := newTestRegistry()

	rows := r.CrossJoin("products", "regions", map[string]Values{
		CellKey("Widget", "North"): {Value1: 10, Value2: "4"},
	})

	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	if rows[0].Dim1 != "Widget" || rows[0].Dim2 != "North" || rows[0].Value1 != 10 || rows[0].Value2 != "4" {
		t.Errorf("rows[0] = %+v", rows[0])
	}
	if rows[1].Dim1 != "Gadget" || rows[1].Value1 != nil {
		t.Errorf("rows[1] = %+v", rows[1])
	}
}
