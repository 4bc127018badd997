// Package directions maps semantic direction names onto fixed unit vectors.
//
// World space follows the LPS convention: +X points to the subject's Left,
// +Y to Posterior and +Z to Superior. View directions are expressed in camera
// space, where the camera looks down -Z with +Y up on screen.
package directions

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// ErrKeyNotFound is returned when a direction has no entry in its table.
var ErrKeyNotFound = errors.New("direction not found")

// Cartesian directions along and between the coordinate axes.
type Cartesian int

const (
	X Cartesian = iota
	Y
	Z
	NegX
	NegY
	NegZ
	XY
	XZ
	YZ
	XYZ
)

// View directions in camera space.
type View int

const (
	ViewRight View = iota
	ViewLeft
	ViewUp
	ViewDown
	ViewBack
	ViewFront
)

// Anatomy directions for a human subject.
type Anatomy int

const (
	Left Anatomy = iota
	Right
	Posterior
	Anterior
	Superior
	Inferior
)

// Animal directions for a quadruped subject, placed on the human axes.
type Animal int

const (
	AnimalLeft Animal = iota
	AnimalRight
	Dorsal
	Ventral
	Rostral
	Caudal
)

var invSqrt2 = 1 / math.Sqrt2
var invSqrt3 = 1 / math.Sqrt(3)

var cartesianTable = map[Cartesian]r3.Vec{
	X:    {X: 1},
	Y:    {Y: 1},
	Z:    {Z: 1},
	NegX: {X: -1},
	NegY: {Y: -1},
	NegZ: {Z: -1},
	XY:   {X: invSqrt2, Y: invSqrt2},
	XZ:   {X: invSqrt2, Z: invSqrt2},
	YZ:   {Y: invSqrt2, Z: invSqrt2},
	XYZ:  {X: invSqrt3, Y: invSqrt3, Z: invSqrt3},
}

var viewTable = map[View]r3.Vec{
	ViewRight: {X: 1},
	ViewLeft:  {X: -1},
	ViewUp:    {Y: 1},
	ViewDown:  {Y: -1},
	ViewBack:  {Z: 1},
	ViewFront: {Z: -1},
}

var anatomyTable = map[Anatomy]r3.Vec{
	Left:      {X: 1},
	Right:     {X: -1},
	Posterior: {Y: 1},
	Anterior:  {Y: -1},
	Superior:  {Z: 1},
	Inferior:  {Z: -1},
}

var animalTable = map[Animal]r3.Vec{
	AnimalLeft:  {X: 1},
	AnimalRight: {X: -1},
	Dorsal:      {Y: 1},
	Ventral:     {Y: -1},
	Rostral:     {Z: 1},
	Caudal:      {Z: -1},
}

// GetCartesian returns the unit vector for d.
func GetCartesian(d Cartesian) (r3.Vec, error) {
	return lookup(cartesianTable, d, "cartesian")
}

// GetView returns the camera-space unit vector for d.
func GetView(d View) (r3.Vec, error) {
	return lookup(viewTable, d, "view")
}

// GetAnatomy returns the World unit vector for d.
func GetAnatomy(d Anatomy) (r3.Vec, error) {
	return lookup(anatomyTable, d, "anatomy")
}

// GetAnimal returns the World unit vector for d.
func GetAnimal(d Animal) (r3.Vec, error) {
	return lookup(animalTable, d, "animal")
}

// MustAnatomy is like GetAnatomy but panics on a missing entry. It is meant for
// building static tables.
func MustAnatomy(d Anatomy) r3.Vec {
	v, err := GetAnatomy(d)
	if err != nil {
		panic(err)
	}
	return v
}

// MustCartesian is like GetCartesian but panics on a missing entry.
func MustCartesian(d Cartesian) r3.Vec {
	v, err := GetCartesian(d)
	if err != nil {
		panic(err)
	}
	return v
}

func lookup[K ~int](table map[K]r3.Vec, key K, name string) (r3.Vec, error) {
	v, ok := table[key]
	if !ok {
		return r3.Vec{}, fmt.Errorf("%w: %s direction %d", ErrKeyNotFound, name, int(key))
	}
	return v, nil
}

var anatomyNames = map[Anatomy]string{
	Left:      "Left",
	Right:     "Right",
	Posterior: "Posterior",
	Anterior:  "Anterior",
	Superior:  "Superior",
	Inferior:  "Inferior",
}

func (d Anatomy) String() string {
	if s, ok := anatomyNames[d]; ok {
		return s
	}
	return fmt.Sprintf("Anatomy(%d)", int(d))
}
