package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/hoard/internal/core/domain"
)

func TestDependencySnapshot(t *testing.T) {
	files := []string{"/src/b.js", "/src/a.js", "/src/a.js", ""}
	contexts := []string{"/src", "/src"}

	s := domain.NewDependencySnapshot(files, contexts)

	assert.Equal(t, []string{"/src/a.js", "/src/b.js"}, s.FileDependencies())
	assert.Equal(t, []string{"/src"}, s.ContextDependencies())
	assert.Equal(t, []string{"/src", "/src/a.js", "/src/b.js"}, s.Paths())
	assert.Equal(t, 3, s.Len())

	// Mutating the inputs or outputs must not leak into the snapshot.
	files[0] = "/elsewhere"
	got := s.FileDependencies()
	got[0] = "/mutated"
	assert.Equal(t, []string{"/src/a.js", "/src/b.js"}, s.FileDependencies())
}

func TestDependencySnapshot_Nil(t *testing.T) {
	var s *domain.DependencySnapshot
	assert.Nil(t, s.Paths())
	assert.Nil(t, s.FileDependencies())
	assert.Nil(t, s.ContextDependencies())
	assert.Zero(t, s.Len())
}
