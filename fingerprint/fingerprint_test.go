package fingerprint

import "testing"

func TestSum64KnownVector(t *testing.T) {
	// CRC-64/ECMA of the empty string is 0.
	if got := Sum64(nil); got != 0 {
		t.Fatalf("Sum64(nil): got %#x want 0", got)
	}
}

func TestMemberIDNeverZero(t *testing.T) {
	for _, name := range []string{"", "id", "name", "score", "a-name-whose-hash-might-collide"} {
		if id := MemberID(name); id == 0 {
			t.Fatalf("MemberID(%q): got 0, which is reserved as the terminator", name)
		}
	}
}

func TestMemberIDDeterministic(t *testing.T) {
	if MemberID("field") != MemberID("field") {
		t.Fatalf("MemberID is not deterministic across calls")
	}
}

func TestFingerprintSensitiveToShape(t *testing.T) {
	members := []Member{{Name: "x", TypeName: "u32"}}
	named := Fingerprint("Point", KindStruct, ShapeNamed, members)
	positional := Fingerprint("Point", KindStruct, ShapePositional, members)
	if named == positional {
		t.Fatalf("fingerprints for named vs positional shape must differ")
	}
}

func TestFingerprintSensitiveToMemberType(t *testing.T) {
	a := Fingerprint("Point", KindStruct, ShapeNamed, []Member{{Name: "x", TypeName: "u32"}})
	b := Fingerprint("Point", KindStruct, ShapeNamed, []Member{{Name: "x", TypeName: "u64"}})
	if a == b {
		t.Fatalf("fingerprints for differing member types must differ")
	}
}

func TestFingerprintOrderSensitive(t *testing.T) {
	a := Fingerprint("Pair", KindStruct, ShapeNamed, []Member{
		{Name: "a", TypeName: "u32"},
		{Name: "b", TypeName: "u32"},
	})
	b := Fingerprint("Pair", KindStruct, ShapeNamed, []Member{
		{Name: "b", TypeName: "u32"},
		{Name: "a", TypeName: "u32"},
	})
	if a == b {
		t.Fatalf("fingerprints must be sensitive to member declaration order")
	}
}
