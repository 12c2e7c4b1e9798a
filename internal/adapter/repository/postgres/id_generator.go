package postgres

import "github.com/oklog/ulid/v2"

// ULIDGenerator issues lexicographically sortable record IDs. Sortable
// IDs keep the multi-product lock ordering stable across restarts.
type ULIDGenerator struct{}

func NewULIDGenerator() *ULIDGenerator {
	return &ULIDGenerator{}
}

func (ULIDGenerator) Generate() string {
	return ulid.Make().String()
}
