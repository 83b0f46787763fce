package cache

import (
	"os"
	"strings"
	"testing"
	"time"
)

func sampleRecord() Record {
	return Record{
		Computed:    strings.Repeat("ab", 32),
		Stored:      strings.Repeat("ab", 32),
		OK:          true,
		MarkerLines: 1,
	}
}

func TestFileKey_Deterministic(t *testing.T) {
	mtime := time.Unix(1700000000, 123)
	a := FileKey("docs/pricing.cgd.md", 1024, mtime)
	b := FileKey("docs/pricing.cgd.md", 1024, mtime)
	if a != b {
		t.Errorf("same identity produced different keys: %s vs %s", a, b)
	}
	if !strings.HasPrefix(a, "claritygate:v1:") {
		t.Errorf("key missing namespace: %s", a)
	}
}

func TestFileKey_SensitiveToIdentity(t *testing.T) {
	mtime := time.Unix(1700000000, 0)
	base := FileKey("docs/pricing.cgd.md", 1024, mtime)

	if FileKey("docs/other.cgd.md", 1024, mtime) == base {
		t.Error("path change did not change the key")
	}
	if FileKey("docs/pricing.cgd.md", 1025, mtime) == base {
		t.Error("size change did not change the key")
	}
	if FileKey("docs/pricing.cgd.md", 1024, mtime.Add(time.Nanosecond)) == base {
		t.Error("mtime change did not change the key")
	}
}

func TestMemoryCache(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	if _, found := c.Get("missing"); found {
		t.Error("unexpected hit for missing key")
	}

	rec := sampleRecord()
	if err := c.Set("k", rec, time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, found := c.Get("k")
	if !found || got != rec {
		t.Errorf("Get = (%+v, %v), want (%+v, true)", got, found, rec)
	}

	if err := c.Delete("k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, found := c.Get("k"); found {
		t.Error("record survived Delete")
	}
}

func TestDiskCache_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	c := NewDiskCache(dir, time.Minute)

	key := FileKey("docs/a.cgd.md", 10, time.Unix(1700000000, 0))
	rec := sampleRecord()
	if err := c.Set(key, rec, time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, found := c.Get(key)
	if !found || got != rec {
		t.Errorf("Get = (%+v, %v), want (%+v, true)", got, found, rec)
	}
}

func TestDiskCache_Expiry(t *testing.T) {
	dir := t.TempDir()
	c := NewDiskCache(dir, time.Minute)

	if err := c.Set("k", sampleRecord(), -time.Second); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, found := c.Get("k"); found {
		t.Error("expired record returned")
	}
}

func TestDiskCache_CorruptEntryIsMiss(t *testing.T) {
	dir := t.TempDir()
	c := NewDiskCache(dir, time.Minute)

	if err := c.Set("k", sampleRecord(), time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := os.WriteFile(c.path("k"), []byte("not json"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, found := c.Get("k"); found {
		t.Error("corrupt entry must be a miss, not a verification result")
	}
}

func TestLayeredCache_PromotesFromDisk(t *testing.T) {
	dir := t.TempDir()
	c := NewLayeredCache(time.Minute, dir, time.Minute)

	rec := sampleRecord()
	if err := c.Set("k", rec, time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}

	// Fresh layered cache over the same directory: memory is cold, the
	// record must come back from disk and land in memory.
	c2 := NewLayeredCache(time.Minute, dir, time.Minute)
	got, found := c2.Get("k")
	if !found || got != rec {
		t.Fatalf("Get = (%+v, %v), want (%+v, true)", got, found, rec)
	}
	if promoted, found := c2.memory.Get("k"); !found || promoted != rec {
		t.Errorf("record was not promoted to the memory tier: (%+v, %v)", promoted, found)
	}
}
