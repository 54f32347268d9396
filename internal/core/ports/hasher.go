package ports

// Hasher computes fixed-length hex digests of content.
//
//go:generate mockgen -destination=mocks/mock_hasher.go -package=mocks -source=hasher.go
type Hasher interface {
	// HashContent returns the hex digest of data.
	HashContent(data []byte) string
}
