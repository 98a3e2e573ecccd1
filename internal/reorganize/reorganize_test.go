// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package reorganize

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func layout(t *testing.T, rels ...string) string {
	t.Helper()
	root := t.TempDir()
	for _, rel := range rels {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("%PDF"), 0o644))
	}
	return root
}

func planner(t *testing.T, root string) *Planner {
	t.Helper()
	p, err := NewPlanner(root, nil, nil)
	require.NoError(t, err)
	return p
}

// relMoves renders moves as "source -> target" relative to root.
func relMoves(root string, moves []Move) []string {
	var out []string
	for _, m := range moves {
		out = append(out, filepath.ToSlash(relTo(root, m.Source))+" -> "+filepath.ToSlash(relTo(root, m.Target)))
	}
	return out
}

func TestByYear(t *testing.T) {
	root := layout(t,
		"Johnson_2015_Entropy.pdf",
		"Optics/Smith (2012) Lasers.pdf",
		"2010/Doe_2010_Old.pdf",
		"Old_1985_Paper.pdf",
		"Future_2999_Paper.pdf",
		"NoYear.pdf",
	)
	p := planner(t, root)
	p.ByYear(2000, 2026)

	assert.Equal(t, []string{
		"Johnson_2015_Entropy.pdf -> 2015/Johnson_2015_Entropy.pdf",
		"Optics/Smith (2012) Lasers.pdf -> 2012/Smith (2012) Lasers.pdf",
	}, relMoves(root, p.Moves()))
}

func TestByAuthor(t *testing.T) {
	root := layout(t, "Johnson_2015_Entropy.pdf", "Li-2010.pdf", "o'brien_2001.pdf")
	p := planner(t, root)
	p.ByAuthor()

	assert.Equal(t, []string{
		"Johnson_2015_Entropy.pdf -> By_Author/J/Johnson/Johnson_2015_Entropy.pdf",
		"o'brien_2001.pdf -> By_Author/O/obrien/o'brien_2001.pdf",
	}, relMoves(root, p.Moves()))
}

func TestByKeywordsFirstMatchWins(t *testing.T) {
	root := layout(t, "quantum_laser.pdf", "LASER_cooling.pdf", "biology.pdf", "Optics/photon_counting.pdf")
	km, err := ParseKeywordMap([]byte("Quantum_Mechanics: [quantum]\nOptics: [Laser, photon]\n"))
	require.NoError(t, err)

	p := planner(t, root)
	p.ByKeywords(km)

	assert.Equal(t, []string{
		"LASER_cooling.pdf -> Optics/LASER_cooling.pdf",
		"quantum_laser.pdf -> Quantum_Mechanics/quantum_laser.pdf",
	}, relMoves(root, p.Moves()), "files already in the target folder stay put")
}

func TestConsolidate(t *testing.T) {
	root := layout(t,
		"Big/a.pdf", "Big/b.pdf", "Big/c.pdf",
		"Small/a.pdf",
		"Physics/Tiny/x.pdf",
		"root.pdf",
	)
	p := planner(t, root)
	p.Consolidate(DefaultMinPapers)

	assert.Equal(t, []string{
		"Physics/Tiny/x.pdf -> Other/Physics/x.pdf",
		"Small/a.pdf -> Other/Miscellaneous/a.pdf",
	}, relMoves(root, p.Moves()))
}

func TestFlatten(t *testing.T) {
	root := layout(t, "A/B/C/deep.pdf", "A/B/shallow.pdf")
	p := planner(t, root)
	p.Flatten(DefaultMaxDepth)

	assert.Equal(t, []string{"A/B/C/deep.pdf -> A_B/deep.pdf"}, relMoves(root, p.Moves()))
}

func TestPlanRenamesConflicts(t *testing.T) {
	root := layout(t, "X/paper.pdf", "Y/paper.pdf", "Other/Miscellaneous/paper.pdf")
	p := planner(t, root)
	p.Consolidate(DefaultMinPapers)

	assert.Equal(t, []string{
		"X/paper.pdf -> Other/Miscellaneous/paper_1.pdf",
		"Y/paper.pdf -> Other/Miscellaneous/paper_2.pdf",
	}, relMoves(root, p.Moves()))
}

func TestPlanMovesEachFileOnce(t *testing.T) {
	root := layout(t, "Johnson_2015_Entropy.pdf")
	p := planner(t, root)
	p.ByYear(2000, 2026)
	p.ByAuthor()

	require.Len(t, p.Moves(), 1)
	assert.Equal(t, filepath.Join(root, "2015", "Johnson_2015_Entropy.pdf"), p.Moves()[0].Target)
}

func TestAnalyze(t *testing.T) {
	rels := []string{"Big/a.pdf", "Big/b.pdf", "Big/c.pdf", "Small/a.pdf", "A/B/C/D/deep.pdf"}
	for i := 0; i < 11; i++ {
		rels = append(rels, "r"+string(rune('a'+i))+".pdf")
	}
	root := layout(t, rels...)

	a := planner(t, root).Analyze()
	assert.Equal(t, 16, a.Total)
	assert.Equal(t, 11, a.RootCount)
	assert.Equal(t, FolderCount{Folder: "ROOT", Count: 11}, a.Folders[0])
	assert.Equal(t, []string{"A/B/C/D", "Small"}, a.SmallFolders)
	assert.Equal(t, 4, a.MaxDepth)

	var buf bytes.Buffer
	a.Write(&buf)
	out := buf.String()
	assert.Contains(t, out, "Current structure (16 papers):")
	assert.Contains(t, out, "11 papers in root folder")
	assert.Contains(t, out, "2 folders with <=2 papers")
	assert.Contains(t, out, "nested up to 4 levels deep")
}

func TestExecuteAndCleanup(t *testing.T) {
	root := layout(t, "Small/a.pdf", "Physics/Tiny/x.pdf")
	p := planner(t, root)
	p.Consolidate(DefaultMinPapers)
	require.Len(t, p.Moves(), 2)

	var log bytes.Buffer
	res := Execute(&log, p.Moves())
	assert.Equal(t, ExecResult{Moved: 2}, res)
	assert.FileExists(t, filepath.Join(root, "Other", "Miscellaneous", "a.pdf"))
	assert.FileExists(t, filepath.Join(root, "Other", "Physics", "x.pdf"))

	removed, err := RemoveEmptyDirs(root)
	require.NoError(t, err)
	assert.Equal(t, 3, removed, "Small, Physics/Tiny, and then Physics")
	assert.NoDirExists(t, filepath.Join(root, "Physics"))
	assert.DirExists(t, filepath.Join(root, "Other", "Physics"))
}

func TestExecuteCountsErrors(t *testing.T) {
	root := t.TempDir()
	var log bytes.Buffer
	res := Execute(&log, []Move{{Source: filepath.Join(root, "missing.pdf"), Target: filepath.Join(root, "x", "missing.pdf")}})
	assert.Equal(t, ExecResult{Errors: 1}, res)
	assert.Contains(t, log.String(), "error moving missing.pdf")
}

func TestPreview(t *testing.T) {
	root := "/papers"
	var moves []Move
	for i := 0; i < 12; i++ {
		moves = append(moves, Move{Source: filepath.Join(root, "a.pdf"), Target: filepath.Join(root, "b", "a.pdf")})
	}
	var buf bytes.Buffer
	Preview(&buf, root, moves)
	assert.Contains(t, buf.String(), "... and 2 more")
}

func TestParseKeywordMap(t *testing.T) {
	km, err := ParseKeywordMap([]byte(`{"Stat_Mech": ["entropy"], "Optics": ["laser"]}`))
	require.NoError(t, err)
	require.Len(t, km, 2)
	assert.Equal(t, "Stat_Mech", km[0].Folder, "JSON input keeps key order")
	assert.Equal(t, []string{"laser"}, km[1].Keywords)

	_, err = ParseKeywordMap([]byte("- a\n- b\n"))
	assert.Error(t, err)

	_, err = ParseKeywordMap([]byte("Optics: {nested: true}\n"))
	assert.Error(t, err)

	_, err = ParseKeywordMap(nil)
	assert.Error(t, err)
}

func TestLoadKeywordMap(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keywords.yaml")
	require.NoError(t, os.WriteFile(path, []byte("Optics:\n  - laser\n"), 0o644))
	km, err := LoadKeywordMap(path)
	require.NoError(t, err)
	assert.Equal(t, KeywordMap{{Folder: "Optics", Keywords: []string{"laser"}}}, km)

	_, err = LoadKeywordMap(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
