package reconcile

import (
	"reflect"
	"testing"
)

func TestNewSetSortsAndDedupes(t *testing.T) {
	s := NewSet("nmap", "amass", "nmap", "", "httpx", "amass")
	want := []string{"amass", "httpx", "nmap"}
	if got := s.Items(); !reflect.DeepEqual(got, want) {
		t.Errorf("Items() = %v, want %v", got, want)
	}
	if s.Len() != 3 {
		t.Errorf("Len() = %d, want 3", s.Len())
	}
}

func TestNewSetDoesNotRetainInput(t *testing.T) {
	names := []string{"nmap", "amass", "httpx"}
	s := NewSet(names...)
	names[0] = "mutated"
	if s.Contains("mutated") {
		t.Error("NewSet retained the caller's backing array")
	}
	if !s.Contains("nmap") {
		t.Error("set lost an element after caller mutation")
	}
}

func TestSetIsCaseSensitive(t *testing.T) {
	s := NewSet("Nmap", "nmap")
	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2: names differing in case are distinct", s.Len())
	}
	if !s.Contains("Nmap") || !s.Contains("nmap") {
		t.Error("both case variants should be present")
	}
}

func TestUnion(t *testing.T) {
	cases := []struct {
		name string
		a, b Set
		want []string
	}{
		{
			name: "overlapping",
			a:    NewSet("amass", "nmap"),
			b:    NewSet("httpx", "nmap"),
			want: []string{"amass", "httpx", "nmap"},
		},
		{
			name: "disjoint",
			a:    NewSet("dnsx"),
			b:    NewSet("naabu"),
			want: []string{"dnsx", "naabu"},
		},
		{
			name: "left empty",
			a:    NewSet(),
			b:    NewSet("nmap"),
			want: []string{"nmap"},
		},
		{
			name: "both empty",
			a:    Set{},
			b:    Set{},
			want: []string{},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Union(tc.b).Items(); !reflect.DeepEqual(got, tc.want) {
				t.Errorf("Union = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestDiff(t *testing.T) {
	cases := []struct {
		name string
		a, b Set
		want []string
	}{
		{
			name: "removes intersection",
			a:    NewSet("amass", "httpx", "nmap"),
			b:    NewSet("httpx"),
			want: []string{"amass", "nmap"},
		},
		{
			name: "disjoint keeps all",
			a:    NewSet("amass", "nmap"),
			b:    NewSet("dnsx"),
			want: []string{"amass", "nmap"},
		},
		{
			name: "equal sets empty out",
			a:    NewSet("amass", "nmap"),
			b:    NewSet("nmap", "amass"),
			want: []string{},
		},
		{
			name: "diff with empty is identity",
			a:    NewSet("nmap"),
			b:    Set{},
			want: []string{"nmap"},
		},
		{
			name: "empty minus anything is empty",
			a:    Set{},
			b:    NewSet("nmap"),
			want: []string{},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Diff(tc.b).Items(); !reflect.DeepEqual(got, tc.want) {
				t.Errorf("Diff = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestUnionAndDiffLeaveOperandsAlone(t *testing.T) {
	a := NewSet("amass", "nmap")
	b := NewSet("httpx", "nmap")

	_ = a.Union(b)
	_ = a.Diff(b)
	_ = b.Diff(a)

	if got, want := a.Items(), []string{"amass", "nmap"}; !reflect.DeepEqual(got, want) {
		t.Errorf("left operand changed: %v, want %v", got, want)
	}
	if got, want := b.Items(), []string{"httpx", "nmap"}; !reflect.DeepEqual(got, want) {
		t.Errorf("right operand changed: %v, want %v", got, want)
	}
}

func TestItemsReturnsCopy(t *testing.T) {
	s := NewSet("amass", "nmap")
	items := s.Items()
	items[0] = "mutated"
	if s.Contains("mutated") {
		t.Error("Items() exposed the internal slice")
	}
}

func TestVariadicUnion(t *testing.T) {
	got := Union(NewSet("nmap"), NewSet("amass"), NewSet("nmap", "dnsx")).Items()
	want := []string{"amass", "dnsx", "nmap"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Union(...) = %v, want %v", got, want)
	}
}

func TestReconcile(t *testing.T) {
	required := NewSet("amass", "nmap", "sslyze")
	installed := NewSet("nmap", "wireshark")

	res := Reconcile(required, installed)

	if got, want := res.Missing.Items(), []string{"amass", "sslyze"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Missing = %v, want %v", got, want)
	}
	if got, want := res.Extra.Items(), []string{"wireshark"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Extra = %v, want %v", got, want)
	}

	// Every missing element comes from required, every extra from installed.
	for _, m := range res.Missing.Items() {
		if !required.Contains(m) {
			t.Errorf("missing element %q not in required", m)
		}
		if installed.Contains(m) {
			t.Errorf("missing element %q is installed", m)
		}
	}
	for _, e := range res.Extra.Items() {
		if !installed.Contains(e) {
			t.Errorf("extra element %q not in installed", e)
		}
		if required.Contains(e) {
			t.Errorf("extra element %q is required", e)
		}
	}
}

func TestReconcilePartitionsInputs(t *testing.T) {
	required := NewSet("amass", "httpx", "nmap", "sslyze")
	installed := NewSet("httpx", "nmap", "wireshark")

	res := Reconcile(required, installed)

	// Missing plus the intersection rebuilds required; extra plus the
	// intersection rebuilds installed.
	both := required.Diff(res.Missing)
	if got, want := res.Missing.Union(both).Items(), required.Items(); !reflect.DeepEqual(got, want) {
		t.Errorf("missing ∪ intersection = %v, want required %v", got, want)
	}
	if got, want := res.Extra.Union(both).Items(), installed.Items(); !reflect.DeepEqual(got, want) {
		t.Errorf("extra ∪ intersection = %v, want installed %v", got, want)
	}

	// A second run over the same inputs produces identical lists.
	again := Reconcile(required, installed)
	if !reflect.DeepEqual(again.Missing.Items(), res.Missing.Items()) ||
		!reflect.DeepEqual(again.Extra.Items(), res.Extra.Items()) {
		t.Error("reconciliation is not deterministic across runs")
	}
}

func TestReconcileSetAgainstItself(t *testing.T) {
	s := NewSet("amass", "nmap", "sslyze")
	res := Reconcile(s, s)
	if !res.Missing.IsEmpty() {
		t.Errorf("Missing = %v, want empty", res.Missing.Items())
	}
	if !res.Extra.IsEmpty() {
		t.Errorf("Extra = %v, want empty", res.Extra.Items())
	}
}

func TestReconcileEmptyOperands(t *testing.T) {
	res := Reconcile(NewSet("nmap"), NewSet())
	if got, want := res.Missing.Items(), []string{"nmap"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Missing = %v, want %v", got, want)
	}
	if !res.Extra.IsEmpty() {
		t.Errorf("Extra = %v, want empty", res.Extra.Items())
	}

	res = Reconcile(NewSet(), NewSet("wireshark"))
	if !res.Missing.IsEmpty() {
		t.Errorf("Missing = %v, want empty", res.Missing.Items())
	}
	if got, want := res.Extra.Items(), []string{"wireshark"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Extra = %v, want %v", got, want)
	}
}
