// Package models holds the plain data types shared by the configuration layer
// and the interaction core.
package models

import (
	"fmt"
)

// ViewUID identifies one rendering viewport.
type ViewUID string

// ViewType selects the role of a viewport. Each view type drives exactly one
// viewport.
type ViewType int

const (
	ImageAxial ViewType = iota
	ImageCoronal
	ImageSagittal
	Image3D
	ImageBig3D
	StackActiveSlide
	StackSide1
	StackSide2
	Stack3D
	RegActiveSlide
	RegRefImageAtSlide
)

// AllViewTypes lists every view type in declaration order.
var AllViewTypes = []ViewType{
	ImageAxial,
	ImageCoronal,
	ImageSagittal,
	Image3D,
	ImageBig3D,
	StackActiveSlide,
	StackSide1,
	StackSide2,
	Stack3D,
	RegActiveSlide,
	RegRefImageAtSlide,
}

var viewTypeNames = map[ViewType]string{
	ImageAxial:         "Image_Axial",
	ImageCoronal:       "Image_Coronal",
	ImageSagittal:      "Image_Sagittal",
	Image3D:            "Image_3D",
	ImageBig3D:         "Image_Big3D",
	StackActiveSlide:   "Stack_ActiveSlide",
	StackSide1:         "Stack_StackSide1",
	StackSide2:         "Stack_StackSide2",
	Stack3D:            "Stack_3D",
	RegActiveSlide:     "Reg_ActiveSlide",
	RegRefImageAtSlide: "Reg_RefImageAtSlide",
}

func (v ViewType) String() string {
	if s, ok := viewTypeNames[v]; ok {
		return s
	}
	return fmt.Sprintf("ViewType(%d)", int(v))
}

// ParseViewType returns the view type with the given name, as printed by
// ViewType.String.
func ParseViewType(name string) (ViewType, error) {
	for v, s := range viewTypeNames {
		if s == name {
			return v, nil
		}
	}
	return 0, fmt.Errorf("unknown view type %q", name)
}

// View pairs a viewport UID with its type.
type View struct {
	UID  ViewUID
	Type ViewType
}

// Layout is a named group of views shown together, such as one tab of the
// application window.
type Layout struct {
	Name  string
	Views []View
}
