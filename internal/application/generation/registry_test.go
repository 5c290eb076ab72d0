package generation

import "testing"

func TestResolveAutoFallsBackToDefault(t *testing.T) {
	r := NewRegistry()
	p := r.Resolve("auto")
	if p == nil {
		t.Fatal("expected a provider")
	}
	if p.Key != defaultProviderKey {
		t.Fatalf("expected default provider %q, got %q", defaultProviderKey, p.Key)
	}
}

func TestResolveUnknownFallsBackToDefault(t *testing.T) {
	r := NewRegistry()
	p := r.Resolve("does-not-exist")
	if p.Key != defaultProviderKey {
		t.Fatalf("expected default provider, got %q", p.Key)
	}
}

func TestResolveKnownKey(t *testing.T) {
	r := NewRegistry()
	p := r.Resolve("sambanova")
	if p.Key != "sambanova" {
		t.Fatalf("expected sambanova, got %q", p.Key)
	}
	if p.SupportsMaxTokens {
		t.Fatal("sambanova must not accept a max_tokens parameter")
	}
	if !p.QuirkyTruncation {
		t.Fatal("sambanova requires quirky truncation")
	}
}

func TestLookupTreatsAutoAsMiss(t *testing.T) {
	r := NewRegistry()
	if _, ok := r.Lookup("auto"); ok {
		t.Fatal("auto must not resolve as an explicit choice")
	}
	if _, ok := r.Lookup(""); ok {
		t.Fatal("empty key must not resolve as an explicit choice")
	}
	if _, ok := r.Lookup("nebius"); !ok {
		t.Fatal("nebius should be an explicit choice")
	}
}

func TestAllReturnsStableCatalog(t *testing.T) {
	r := NewRegistry()
	all := r.All()
	if len(all) != 4 {
		t.Fatalf("expected 4 providers, got %d", len(all))
	}
	if all[0].Key != "fireworks-ai" {
		t.Fatalf("expected fireworks-ai first, got %q", all[0].Key)
	}
	for _, p := range all {
		if p.MaxTokens <= 0 {
			t.Fatalf("provider %q has no context ceiling", p.Key)
		}
	}
}
