package ports

import "github.com/aretw0/zconv/pkg/view"

// Region is a display area. Every write replaces the whole content atomically.
type Region interface {
	Replace(nodes ...view.Node)
	Clear()
}

// Input is a text field.
type Input interface {
	Value() string
	SetValue(v string)
}

// Document is the host page.
// Lookups return domain.ErrElementNotFound when the ID is absent.
type Document interface {
	Region(id string) (Region, error)
	Input(id string) (Input, error)
	// Control checks that an interactive element (form or button) exists.
	Control(id string) error
}
