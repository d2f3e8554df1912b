package domain

import "testing"

func TestKindByCollection(t *testing.T) {
	for _, kind := range Kinds() {
		got, ok := KindByCollection(kind.Collection)
		if !ok || got.Label != kind.Label {
			t.Fatalf("lookup %s failed: %+v %v", kind.Collection, got, ok)
		}
	}
	if _, ok := KindByCollection("unicorns"); ok {
		t.Fatal("expected unknown collection to miss")
	}
}

func TestOnlyCategoriesNest(t *testing.T) {
	for _, kind := range Kinds() {
		if kind.HasParent != (kind.Collection == KindCategory.Collection) {
			t.Fatalf("unexpected HasParent for %s", kind.Collection)
		}
	}
}

func TestPositionOf_NilSortsAfterAnyNumeric(t *testing.T) {
	unpositioned := Entity{}
	positioned := Entity{Position: Pos(1 << 30)}
	if unpositioned.PositionOf() <= positioned.PositionOf() {
		t.Fatal("nil position should rank after numeric positions")
	}
}
