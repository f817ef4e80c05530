package diff

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IgorBayerl/ReportGenerator/go_coverage_gate/internal/filechange"
)

// numbered returns the lines "prefix<from>".."prefix<to>".
func numbered(prefix string, from, to int) []string {
	var lines []string
	for i := from; i <= to; i++ {
		lines = append(lines, prefix+strings.Repeat("x", i))
	}
	return lines
}

// fixtureVersions builds two versions of a file that differ by the hunks
// INSERT(4;5-9) INSERT(8;14-18) REPLACE(10-11;20-22) DELETE(16-19;26) INSERT(25;33-36).
func fixtureVersions() (before, after []string) {
	before = numbered("old", 1, 30)
	line := func(n int) string { return before[n-1] }

	after = append(after, line(1), line(2), line(3), line(4))
	after = append(after, numbered("ins-a", 1, 5)...)
	after = append(after, line(5), line(6), line(7), line(8))
	after = append(after, numbered("ins-b", 1, 5)...)
	after = append(after, line(9))
	after = append(after, numbered("rep", 1, 3)...)
	for n := 12; n <= 15; n++ {
		after = append(after, line(n))
	}
	for n := 20; n <= 25; n++ {
		after = append(after, line(n))
	}
	after = append(after, numbered("ins-c", 1, 4)...)
	for n := 26; n <= 30; n++ {
		after = append(after, line(n))
	}
	return before, after
}

func expectedFixtureChanges() []filechange.Change {
	return []filechange.Change{
		filechange.NewInsert(4, 5, 9),
		filechange.NewInsert(8, 14, 18),
		filechange.NewReplace(10, 11, 20, 22),
		filechange.NewDelete(16, 19, 26),
		filechange.NewInsert(25, 33, 36),
	}
}

func TestFromContents(t *testing.T) {
	before, after := fixtureVersions()

	fc := FromContents("test/example/Test1.java", before, after)

	assert.Equal(t, filechange.Modified, fc.EditType)
	assert.Equal(t, expectedFixtureChanges(), fc.Changes)
	assert.Equal(t, []int{5, 6, 7, 8, 9, 14, 15, 16, 17, 18, 20, 21, 22, 33, 34, 35, 36}, fc.AddedLines())
}

func TestFromContentsAddedAndDeletedFiles(t *testing.T) {
	added := FromContents("New.java", nil, []string{"a", "b"})
	assert.Equal(t, filechange.Added, added.EditType)
	assert.Equal(t, []filechange.Change{filechange.NewInsert(0, 1, 2)}, added.Changes)

	deleted := FromContents("Old.java", []string{"a", "b"}, nil)
	assert.Equal(t, filechange.Deleted, deleted.EditType)
	assert.Equal(t, []filechange.Change{filechange.NewDelete(1, 2, 0)}, deleted.Changes)
}

func TestCompareFiles(t *testing.T) {
	dir := t.TempDir()
	before, after := fixtureVersions()
	beforePath := filepath.Join(dir, "before.java")
	afterPath := filepath.Join(dir, "after.java")
	require.NoError(t, os.WriteFile(beforePath, []byte(strings.Join(before, "\n")+"\n"), 0o644))
	require.NoError(t, os.WriteFile(afterPath, []byte(strings.Join(after, "\n")+"\n"), 0o644))

	fc, err := CompareFiles("Test1.java", beforePath, afterPath)

	require.NoError(t, err)
	assert.Equal(t, expectedFixtureChanges(), fc.Changes)

	_, err = CompareFiles("Test1.java", filepath.Join(dir, "missing"), afterPath)
	assert.Error(t, err)
}

const unifiedDiff = `diff --git a/src/main/java/test/example/Test1.java b/src/main/java/test/example/Test1.java
index 1111111..2222222 100644
--- a/src/main/java/test/example/Test1.java
+++ b/src/main/java/test/example/Test1.java
@@ -2,6 +2,8 @@
 two
 three
 four
+new-a
+new-b
 five
 six
 seven
@@ -10,8 +12,7 @@
 ten
 eleven
 twelve
-thirteen
-fourteen
+fourteen-changed
 fifteen
 sixteen
 seventeen
@@ -20,4 +21,3 @@
 twenty
 twenty-one
-twenty-two
 twenty-three
diff --git a/src/main/java/test/example/Old.java b/src/main/java/test/example/Renamed.java
similarity index 90%
rename from src/main/java/test/example/Old.java
rename to src/main/java/test/example/Renamed.java
index 3333333..4444444 100644
--- a/src/main/java/test/example/Old.java
+++ b/src/main/java/test/example/Renamed.java
@@ -1,3 +1,3 @@
 one
-two
+zwei
 three
diff --git a/src/main/java/test/example/Added.java b/src/main/java/test/example/Added.java
new file mode 100644
index 0000000..5555555
--- /dev/null
+++ b/src/main/java/test/example/Added.java
@@ -0,0 +1,2 @@
+first
+second
diff --git a/src/main/java/test/example/Gone.java b/src/main/java/test/example/Gone.java
deleted file mode 100644
index 6666666..0000000
--- a/src/main/java/test/example/Gone.java
+++ /dev/null
@@ -1,2 +0,0 @@
-first
-second
`

func TestParseUnified(t *testing.T) {
	cs, err := ParseUnified(unifiedDiff)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"src/main/java/test/example/Added.java",
		"src/main/java/test/example/Gone.java",
		"src/main/java/test/example/Renamed.java",
		"src/main/java/test/example/Test1.java",
	}, cs.Paths())

	modified := cs.Files["src/main/java/test/example/Test1.java"]
	assert.Equal(t, filechange.Modified, modified.EditType)
	assert.Equal(t, []filechange.Change{
		filechange.NewInsert(4, 5, 6),
		filechange.NewReplace(13, 14, 15, 15),
		filechange.NewDelete(22, 22, 22),
	}, modified.Changes)

	renamed := cs.Files["src/main/java/test/example/Renamed.java"]
	assert.Equal(t, filechange.Renamed, renamed.EditType)
	assert.Equal(t, []filechange.Change{filechange.NewReplace(2, 2, 2, 2)}, renamed.Changes)
	assert.Equal(t, map[string]string{
		"src/main/java/test/example/Renamed.java": "src/main/java/test/example/Old.java",
	}, cs.OldPaths)

	added := cs.Files["src/main/java/test/example/Added.java"]
	assert.Equal(t, filechange.Added, added.EditType)
	assert.Equal(t, []filechange.Change{filechange.NewInsert(0, 1, 2)}, added.Changes)

	gone := cs.Files["src/main/java/test/example/Gone.java"]
	assert.Equal(t, filechange.Deleted, gone.EditType)
	assert.Equal(t, []filechange.Change{filechange.NewDelete(1, 2, 0)}, gone.Changes)
}

func TestStripPrefix(t *testing.T) {
	cs, err := ParseUnified(unifiedDiff)
	require.NoError(t, err)

	stripped := cs.StripPrefix("src/main/java")

	assert.Contains(t, stripped.Files, "test/example/Test1.java")
	assert.Equal(t, "test/example/Test1.java", stripped.Files["test/example/Test1.java"].FileName)
	assert.Equal(t, map[string]string{"test/example/Renamed.java": "test/example/Old.java"}, stripped.OldPaths)
	assert.Contains(t, cs.Files, "src/main/java/test/example/Test1.java", "original is unchanged")
}

func TestParseUnifiedRejectsGarbage(t *testing.T) {
	_, err := ParseUnified("diff --git a/x b/x\n@@ -1,2 +1,2 @@\n-only one line\n")

	assert.Error(t, err)
}
