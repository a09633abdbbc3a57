package catalog

import (
	"testing"

	"github.com/petrarca/stack-advisor/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTree() *types.Category {
	return &types.Category{
		Name: "catalog",
		Children: []types.CatalogNode{
			&types.Category{
				Name: "databases",
				Children: []types.CatalogNode{
					&types.ServiceDescriptor{Name: "postgresql", Type: "database", Category: "databases", Priority: 90, Port: 5432},
					&types.ServiceDescriptor{Name: "mysql", Type: "database", Category: "databases", Priority: 85, Port: 3306},
					&types.ServiceDescriptor{Name: "sqlite", Type: "database", Category: "databases", Priority: 85},
				},
			},
			&types.Category{
				Name: "core",
				Children: []types.CatalogNode{
					&types.ServiceDescriptor{Name: "editorconfig", Type: "editor_config", Category: "core", Priority: 50},
				},
			},
			&types.ServiceDescriptor{Name: "redis", Type: "cache", Category: "caching", Priority: 80, Port: 6379},
		},
	}
}

func TestNew(t *testing.T) {
	cat, err := New(testTree())
	require.NoError(t, err)

	assert.Equal(t, 5, cat.Len())
	assert.NotNil(t, cat.Lookup("postgresql"))
	assert.NotNil(t, cat.Lookup("redis"))
	assert.Nil(t, cat.Lookup("unknown"))
}

func TestNew_DuplicateNames(t *testing.T) {
	root := &types.Category{
		Name: "catalog",
		Children: []types.CatalogNode{
			&types.ServiceDescriptor{Name: "redis", Type: "cache", Priority: 80},
			&types.ServiceDescriptor{Name: "redis", Type: "cache", Priority: 70},
		},
	}

	_, err := New(root)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate descriptor name")
}

func TestDescriptors_SortedByName(t *testing.T) {
	cat, err := New(testTree())
	require.NoError(t, err)

	var names []string
	for _, desc := range cat.Descriptors() {
		names = append(names, desc.Name)
	}
	assert.Equal(t, []string{"editorconfig", "mysql", "postgresql", "redis", "sqlite"}, names)
}

func TestCoreDescriptors(t *testing.T) {
	cat, err := New(testTree())
	require.NoError(t, err)

	core := cat.CoreDescriptors()
	require.Len(t, core, 1)
	assert.Equal(t, "editorconfig", core[0].Name)
}

func TestByType_PriorityThenName(t *testing.T) {
	cat, err := New(testTree())
	require.NoError(t, err)

	var names []string
	for _, desc := range cat.ByType("database") {
		names = append(names, desc.Name)
	}
	assert.Equal(t, []string{"postgresql", "mysql", "sqlite"}, names)

	assert.Empty(t, cat.ByType("nonexistent"))
}

func TestLoadDefault(t *testing.T) {
	cat, err := LoadDefault()
	require.NoError(t, err)

	assert.Greater(t, cat.Len(), 30)
	assert.NotNil(t, cat.Lookup("postgresql"))
	assert.NotNil(t, cat.Lookup("redis"))
	assert.NotEmpty(t, cat.CoreDescriptors())

	// Every descriptor must carry a type and a valid priority.
	for _, desc := range cat.Descriptors() {
		assert.NotEmpty(t, desc.Type, "descriptor %s has no type", desc.Name)
		assert.GreaterOrEqual(t, desc.Priority, 0, "descriptor %s", desc.Name)
		assert.LessOrEqual(t, desc.Priority, 100, "descriptor %s", desc.Name)
	}
}
