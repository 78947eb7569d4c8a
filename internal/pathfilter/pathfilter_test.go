package pathfilter

import "testing"

func TestCompileEmptyFiltersNothing(t *testing.T) {
	f, err := Compile("", "")
	if err != nil {
		t.Fatal(err)
	}
	if f.HasInclude() || f.HasExclude() {
		t.Fatal("empty patterns should configure no filtering")
	}
	if !f.Included("/any/path") {
		t.Fatal("no include filter: everything should pass")
	}
	if f.Excluded("/any/path") {
		t.Fatal("no exclude filter: nothing should be dropped")
	}
}

func TestIncludeAnchoredToFullPath(t *testing.T) {
	f, err := Compile(`.*/d/.*`, "")
	if err != nil {
		t.Fatal(err)
	}
	if !f.Included("/r/d/f3") {
		t.Fatal("expected /r/d/f3 to match .*/d/.*")
	}
	if f.Included("/r/d") {
		t.Fatal("the directory path itself should not match .*/d/.* (no trailing segment)")
	}
}

func TestExcludeMatches(t *testing.T) {
	f, err := Compile("", `.*\.tmp`)
	if err != nil {
		t.Fatal(err)
	}
	if !f.Excluded("/r/cache.tmp") {
		t.Fatal("expected cache.tmp to be excluded")
	}
	if f.Excluded("/r/cache.dat") {
		t.Fatal("cache.dat should not be excluded")
	}
}

func TestNilFilterIsSafe(t *testing.T) {
	var f *Filter
	if f.HasInclude() || f.HasExclude() {
		t.Fatal("nil filter should report no filtering configured")
	}
	if !f.Included("/anything") {
		t.Fatal("nil filter should include everything")
	}
	if f.Excluded("/anything") {
		t.Fatal("nil filter should exclude nothing")
	}
}

func TestCompileInvalidRegexErrors(t *testing.T) {
	if _, err := Compile("(", ""); err == nil {
		t.Fatal("expected an error for an unbalanced include regex")
	}
}
