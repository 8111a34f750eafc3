package component

import (
	"errors"
	"fmt"
)

// Kind names a component type in scenario files and scripts.
type Kind string

const (
	KindRenderer Kind = "renderer"
	KindCollider Kind = "collider"
	KindCamera   Kind = "camera"
)

// ErrUnknownKind is returned by ParseKind for names outside Kinds.
var ErrUnknownKind = errors.New("unknown component kind")

// Kinds lists every kind in a stable order.
var Kinds = []Kind{KindRenderer, KindCollider, KindCamera}

func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}
