package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testNormalizer() *Normalizer {
	return NewNormalizer(
		map[string]string{
			"OakGame": "Game",
			"Wwise":   "WwiseEditor",
		},
		[]CaseFix{
			{Scope: "Game/Maps/Dungeons/Boss/Climb", From: "D_Boss_Climb_P", To: "D_Boss_Climb_p"},
		},
	)
}

func TestNormalize(t *testing.T) {
	n := testNormalizer()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "content wrapped with override",
			in:   "OakGame/Content/Foo/Bar.uasset",
			want: "Game/Foo/Bar.uasset",
		},
		{
			name: "content wrapped without override",
			in:   "Engine/Content/Fonts/Roboto.ufont",
			want: "Engine/Fonts/Roboto.ufont",
		},
		{
			name: "wwise override",
			in:   "Wwise/Content/Init.bnk",
			want: "WwiseEditor/Init.bnk",
		},
		{
			name: "plugin wrapped keeps tail",
			in:   "SomePlugin/Plugins/Weapons/Gun.uasset",
			want: "Weapons/Gun.uasset",
		},
		{
			name: "plugin wins over content",
			in:   "OakGame/Content/Plugins/Thing/Other.uasset",
			want: "Thing/Other.uasset",
		},
		{
			name: "deep content prefix keeps only last root",
			in:   "Some/Deep/OakGame/Content/Foo.uasset",
			want: "Game/Foo.uasset",
		},
		{
			name: "neither shape passes through",
			in:   "Engine/Config/Base.ini",
			want: "Engine/Config/Base.ini",
		},
		{
			name: "case fix file rule",
			in:   "OakGame/Content/Maps/Dungeons/Boss/Climb/D_Boss_Climb_P.umap",
			want: "Game/Maps/Dungeons/Boss/Climb/D_Boss_Climb_p.umap",
		},
		{
			name: "case fix only at scope",
			in:   "OakGame/Content/Other/D_Boss_Climb_P.umap",
			want: "Game/Other/D_Boss_Climb_P.umap",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, n.Normalize(tt.in))
		})
	}
}

func TestNormalizeIsPure(t *testing.T) {
	n := testNormalizer()
	in := "OakGame/Content/Foo/Bar.uasset"
	first := n.Normalize(in)
	assert.Equal(t, first, n.Normalize(in))
}

func TestNormalizerCopiesTables(t *testing.T) {
	overrides := map[string]string{"OakGame": "Game"}
	n := NewNormalizer(overrides, nil)
	overrides["OakGame"] = "Mutated"
	assert.Equal(t, "Game/Foo.uasset", n.Normalize("OakGame/Content/Foo.uasset"))
}

func TestCaseFixDirRule(t *testing.T) {
	n := NewNormalizer(nil, []CaseFix{
		{Scope: "Game/Maps", From: "Zone_1", To: "zone_1", Dir: true},
	})

	assert.Equal(t, "Game/Maps/zone_1/Level.umap",
		n.Normalize("Game/Maps/Zone_1/Level.umap"))
	// A partial segment match must not rewrite.
	assert.Equal(t, "Game/Maps/Zone_12/Level.umap",
		n.Normalize("Game/Maps/Zone_12/Level.umap"))
}

func TestCaseFixesRunInOrder(t *testing.T) {
	// The second rule's From only exists after the first rule ran.
	n := NewNormalizer(nil, []CaseFix{
		{Scope: "Game", From: "Stage_A", To: "stage_a", Dir: true},
		{Scope: "Game/stage_a", From: "Inner_B", To: "inner_b", Dir: true},
	})
	assert.Equal(t, "Game/stage_a/inner_b/File.uasset",
		n.Normalize("Game/Stage_A/Inner_B/File.uasset"))
}
