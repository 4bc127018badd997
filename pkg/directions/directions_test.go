package directions

import (
	"errors"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/spatial/r3"
)

// TestTablesAreUnit verifies every table entry is a unit vector
func TestTablesAreUnit(t *testing.T) {
	for d := X; d <= XYZ; d++ {
		v, err := GetCartesian(d)
		if err != nil {
			t.Fatalf("Unexpected error for cartesian %d: %v", d, err)
		}
		if !scalar.EqualWithinAbs(r3.Norm(v), 1, 1e-12) {
			t.Errorf("Expected unit cartesian %d, got norm %f", d, r3.Norm(v))
		}
	}
	for d := ViewRight; d <= ViewFront; d++ {
		if _, err := GetView(d); err != nil {
			t.Errorf("Unexpected error for view %d: %v", d, err)
		}
	}
	for d := Left; d <= Inferior; d++ {
		if _, err := GetAnatomy(d); err != nil {
			t.Errorf("Unexpected error for anatomy %v: %v", d, err)
		}
	}
	for d := AnimalLeft; d <= Caudal; d++ {
		if _, err := GetAnimal(d); err != nil {
			t.Errorf("Unexpected error for animal %d: %v", d, err)
		}
	}
}

// TestOpposites verifies paired directions are antiparallel
func TestOpposites(t *testing.T) {
	pairs := [][2]Anatomy{{Left, Right}, {Posterior, Anterior}, {Superior, Inferior}}
	for _, p := range pairs {
		a, b := MustAnatomy(p[0]), MustAnatomy(p[1])
		if r3.Add(a, b) != (r3.Vec{}) {
			t.Errorf("Expected %v and %v to be opposite, got %v and %v", p[0], p[1], a, b)
		}
	}
}

// TestLPS verifies that Left x Posterior = Superior
func TestLPS(t *testing.T) {
	got := r3.Cross(MustAnatomy(Left), MustAnatomy(Posterior))
	if got != MustAnatomy(Superior) {
		t.Errorf("Expected L x P = S, got %v", got)
	}
}

// TestAnimalOnHumanAxes checks the quadruped mapping
func TestAnimalOnHumanAxes(t *testing.T) {
	rostral, _ := GetAnimal(Rostral)
	dorsal, _ := GetAnimal(Dorsal)
	if rostral != MustAnatomy(Superior) {
		t.Errorf("Expected rostral along superior, got %v", rostral)
	}
	if dorsal != MustAnatomy(Posterior) {
		t.Errorf("Expected dorsal along posterior, got %v", dorsal)
	}
}

// TestKeyNotFound verifies lookups outside the table fail
func TestKeyNotFound(t *testing.T) {
	if _, err := GetCartesian(Cartesian(99)); !errors.Is(err, ErrKeyNotFound) {
		t.Errorf("Expected ErrKeyNotFound, got %v", err)
	}
	if _, err := GetAnatomy(Anatomy(-1)); !errors.Is(err, ErrKeyNotFound) {
		t.Errorf("Expected ErrKeyNotFound, got %v", err)
	}
}
