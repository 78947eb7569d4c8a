package tree

import (
	"os"
	"testing"

	"dumon/internal/job"
)

const (
	uidA uint32 = 1000
	uidB uint32 = 2000
)

func newResult(name string, parent, inode uint64, count, size map[uint32]uint64) *job.Result {
	return &job.Result{
		Name:        name,
		ParentInode: parent,
		Inode:       inode,
		PerUIDCount: count,
		PerUIDSize:  size,
	}
}

// S1 — basic counts. r/{f1(10B,uidA), f2(20B,uidA), d/{f3(5B,uidA)}}.
func TestWalkBasicRollUp(t *testing.T) {
	results := []*job.Result{
		newResult("r", 0, 1, map[uint32]uint64{uidA: 2}, map[uint32]uint64{uidA: 30}),
		newResult("d", 1, 2, map[uint32]uint64{uidA: 1}, map[uint32]uint64{uidA: 5}),
	}
	idx := BuildIndex(results)
	nodes := Walk(idx, 1, "r", Options{})

	if len(nodes) != 2 {
		t.Fatalf("got %d nodes, want 2", len(nodes))
	}
	if nodes[0].Path != "r" || Total(nodes[0].PerUIDCount) != 3 || Total(nodes[0].PerUIDSize) != 35 {
		t.Fatalf("r node = %+v, want count 3 size 35", nodes[0])
	}
	if nodes[1].Path != "r/d" || Total(nodes[1].PerUIDCount) != 1 || Total(nodes[1].PerUIDSize) != 5 {
		t.Fatalf("r/d node = %+v, want count 1 size 5", nodes[1])
	}
}

// S3 — per-user split. r/{a(uidA,10B), b(uidB,30B)}.
func TestWalkPerUserBuckets(t *testing.T) {
	results := []*job.Result{
		newResult("r", 0, 1,
			map[uint32]uint64{uidA: 1, uidB: 1},
			map[uint32]uint64{uidA: 10, uidB: 30}),
	}
	idx := BuildIndex(results)
	nodes := Walk(idx, 1, "r", Options{})

	rows, userRows := Select(nodes, SelectOptions{UserMode: true})
	if rows != nil {
		t.Fatalf("expected no aggregate rows in user mode, got %+v", rows)
	}
	if len(userRows) != 2 {
		t.Fatalf("got %d user rows, want 2: %+v", len(userRows), userRows)
	}
	byUID := map[uint32]UserRow{}
	for _, r := range userRows {
		byUID[r.UID] = r
	}
	if byUID[uidA].Count != 1 || byUID[uidA].Size != 10 {
		t.Fatalf("uidA row = %+v, want count 1 size 10", byUID[uidA])
	}
	if byUID[uidB].Count != 1 || byUID[uidB].Size != 30 {
		t.Fatalf("uidB row = %+v, want count 1 size 30", byUID[uidB])
	}
}

// S4 — filters. --file-limit 100 on S1 suppresses both rows.
func TestSelectFileLimitSuppressesAll(t *testing.T) {
	results := []*job.Result{
		newResult("r", 0, 1, map[uint32]uint64{uidA: 2}, map[uint32]uint64{uidA: 30}),
		newResult("d", 1, 2, map[uint32]uint64{uidA: 1}, map[uint32]uint64{uidA: 5}),
	}
	idx := BuildIndex(results)
	nodes := Walk(idx, 1, "r", Options{})

	rows, _ := Select(nodes, SelectOptions{MaxDepth: -1, FileLimit: 100})
	if len(rows) != 0 {
		t.Fatalf("got %d rows, want 0: both should be suppressed by --file-limit 100", len(rows))
	}
}

func TestExcludeSubdirsReportsOwnOnly(t *testing.T) {
	results := []*job.Result{
		newResult("r", 0, 1, map[uint32]uint64{uidA: 2}, map[uint32]uint64{uidA: 30}),
		newResult("d", 1, 2, map[uint32]uint64{uidA: 1}, map[uint32]uint64{uidA: 5}),
	}
	idx := BuildIndex(results)
	nodes := Walk(idx, 1, "r", Options{ExcludeSubdirs: true})

	if Total(nodes[0].PerUIDCount) != 2 || Total(nodes[0].PerUIDSize) != 30 {
		t.Fatalf("r node = %+v, want own-only count 2 size 30", nodes[0])
	}
	if Total(nodes[1].PerUIDCount) != 1 || Total(nodes[1].PerUIDSize) != 5 {
		t.Fatalf("d node = %+v, want own-only count 1 size 5", nodes[1])
	}
}

func TestWalkToleratesMissingChild(t *testing.T) {
	// r enqueued a child that never produced a DirResult (e.g. access
	// denied between readdir and descent); the lookup miss must not panic
	// and should contribute nothing to the roll-up.
	results := []*job.Result{
		newResult("r", 0, 1, map[uint32]uint64{uidA: 2}, map[uint32]uint64{uidA: 30}),
	}
	idx := BuildIndex(results)
	idx.tree[1] = append(idx.tree[1], 999) // dangling reference

	nodes := Walk(idx, 1, "r", Options{})
	if len(nodes) != 1 {
		t.Fatalf("got %d nodes, want 1 (missing child yields no node)", len(nodes))
	}
	if Total(nodes[0].PerUIDCount) != 2 || Total(nodes[0].PerUIDSize) != 30 {
		t.Fatalf("r node = %+v, want unaffected by the dangling child", nodes[0])
	}
}

func TestDedupRootsPrefixSuppression(t *testing.T) {
	a := t.TempDir()
	ab := a + "/b"
	if err := os.MkdirAll(ab, 0o755); err != nil {
		t.Fatal(err)
	}
	got, err := DedupRoots([]string{a, ab})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0] != a {
		t.Fatalf("DedupRoots(%q, %q) = %v, want [%q]", a, ab, got, a)
	}
}
