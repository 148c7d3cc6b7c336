package texcache

import "testing"

func TestWithPolicyNormalizes(t *testing.T) {
	p := BudgetPolicy{
		MaxMemoryBudget:   1 << 20,
		EvictionThreshold: 3.5,
		MaxTextureCount:   -1,
		QualityLevel:      0,
	}
	m, err := New(newMockDevice(), WithPolicy(p))
	if err != nil {
		t.Fatal(err)
	}
	got := m.Policy()
	if got.EvictionThreshold != 0.8 {
		t.Errorf("EvictionThreshold = %v, want clamp to 0.8", got.EvictionThreshold)
	}
	if got.QualityLevel != 1.0 {
		t.Errorf("QualityLevel = %v, want clamp to 1.0", got.QualityLevel)
	}
	if got.MaxTextureCount != 0 {
		t.Errorf("MaxTextureCount = %d, want clamp to 0", got.MaxTextureCount)
	}
	if got.MaxMemoryBudget != 1<<20 {
		t.Errorf("MaxMemoryBudget = %d, want passthrough", got.MaxMemoryBudget)
	}
}

func TestDefaultPolicyWhenUnset(t *testing.T) {
	m, err := New(newMockDevice())
	if err != nil {
		t.Fatal(err)
	}
	got := m.Policy()
	want := DefaultBudgetPolicy()
	if got != want {
		t.Errorf("Policy() = %+v, want defaults %+v", got, want)
	}
}

func TestWithDecodeCacheSizeDisabled(t *testing.T) {
	m, err := New(newMockDevice(), WithDecodeCacheSize(0))
	if err != nil {
		t.Fatal(err)
	}
	if m.decoded != nil {
		t.Error("decode cache enabled with size 0")
	}

	m, err = New(newMockDevice(), WithDecodeCacheSize(8))
	if err != nil {
		t.Fatal(err)
	}
	if m.decoded == nil {
		t.Error("decode cache nil with size 8")
	}
}

func TestWithDecoderNilKeepsDefault(t *testing.T) {
	m, err := New(newMockDevice(), WithDecoder(nil))
	if err != nil {
		t.Fatal(err)
	}
	if m.decode == nil {
		t.Error("decoder is nil")
	}
}
