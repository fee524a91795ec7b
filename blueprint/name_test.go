package blueprint

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseName(t *testing.T) {
	tests := []struct {
		path  string
		want  Name
		key   string
		base  string
		isErr bool
	}{
		{
			path: "src/huts/builder3.blueprint",
			want: Name{Path: "src/huts/builder3.blueprint", Prefix: "src/huts/builder", Level: 3},
			key:  "src/huts/builder",
			base: "builder",
		},
		{
			path: "src/a1b/hut12.blueprint",
			want: Name{Path: "src/a1b/hut12.blueprint", Prefix: "src/a1b/hut", Level: 12},
			key:  "src/a1b/hut",
			base: "hut",
		},
		{
			path: "src/fisher 2.blueprint",
			want: Name{Path: "src/fisher 2.blueprint", Prefix: "src/fisher ", Level: 2},
			key:  "src/fisher",
			base: "fisher",
		},
		{path: "src/hut.blueprint", isErr: true},
		{path: "src/hut1.nbt", isErr: true},
		{path: "src/hut1xblueprint", isErr: true},
		{path: "src/hut99999999999999999999.blueprint", isErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := ParseName(tt.path)
			if tt.isErr {
				var nameErr *NameFormatError
				require.ErrorAs(t, err, &nameErr)
				assert.Equal(t, tt.path, nameErr.Path)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.key, got.Key())
			assert.Equal(t, tt.base, got.Base())
		})
	}
}

func TestGroupBy(t *testing.T) {
	names := []Name{
		{Path: "b/hut1.blueprint", Prefix: "b/hut", Level: 1},
		{Path: "a/hut1.blueprint", Prefix: "a/hut", Level: 1},
		{Path: "b/hut2.blueprint", Prefix: "b/hut", Level: 2},
	}

	byKey := GroupBy(names, Name.Key)
	require.Len(t, byKey, 2)
	assert.Equal(t, "b/hut", byKey[0].Key)
	assert.Len(t, byKey[0].Names, 2)

	byBase := GroupBy(names, Name.Base)
	require.Len(t, byBase, 1)
	assert.Len(t, byBase[0].Names, 3)
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	for _, rel := range []string{"huts/hut2.blueprint", "huts/hut1.blueprint", "deco/fence1.blueprint", "deco/readme.txt"} {
		path := filepath.Join(dir, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, nil, 0644))
	}
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "odd.blueprint"), 0755))

	got, err := Discover(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "deco", "fence1.blueprint"),
		filepath.Join(dir, "huts", "hut1.blueprint"),
		filepath.Join(dir, "huts", "hut2.blueprint"),
	}, got)

	_, err = Discover(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}
