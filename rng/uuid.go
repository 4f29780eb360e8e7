package rng

import (
	"github.com/gofrs/uuid"
)

// UUID returns a random (version 4) UUID built from OS entropy.
func UUID() (uuid.UUID, error) {
	b, err := Bytes(uuid.Size)
	if err != nil {
		return uuid.Nil, err
	}

	u, err := uuid.FromBytes(b)
	if err != nil {
		return uuid.Nil, err
	}
	u.SetVersion(uuid.V4)
	u.SetVariant(uuid.VariantRFC4122)
	return u, nil
}
