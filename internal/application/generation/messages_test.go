package generation

import (
	"strings"
	"testing"

	"github.com/cloudwego/eino/schema"
)

func TestBuildMessagesPromptOnly(t *testing.T) {
	msgs := BuildMessages(&Request{Prompt: "a landing page for a bakery"})
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}
	if msgs[0].Role != schema.System {
		t.Fatalf("expected system message first, got %v", msgs[0].Role)
	}
	if !strings.Contains(msgs[0].Content, "SINGLE HTML FILE") {
		t.Fatal("system instruction must require a single HTML file")
	}
	if !strings.Contains(msgs[0].Content, "TailwindCSS") {
		t.Fatal("system instruction must mention TailwindCSS")
	}
	if msgs[1].Role != schema.User || msgs[1].Content != "a landing page for a bakery" {
		t.Fatalf("expected prompt as final user turn, got %+v", msgs[1])
	}
}

func TestBuildMessagesFullContext(t *testing.T) {
	msgs := BuildMessages(&Request{
		Prompt:         "make the header blue",
		PreviousPrompt: "a landing page for a bakery",
		ExistingHTML:   "<html><body>hi</body></html>",
	})
	if len(msgs) != 4 {
		t.Fatalf("expected 4 messages, got %d", len(msgs))
	}
	if msgs[1].Role != schema.User || msgs[1].Content != "a landing page for a bakery" {
		t.Fatalf("expected previous prompt as second turn, got %+v", msgs[1])
	}
	if msgs[2].Role != schema.Assistant {
		t.Fatalf("expected existing document as assistant turn, got %v", msgs[2].Role)
	}
	if msgs[2].Content != "The current code is: <html><body>hi</body></html>" {
		t.Fatalf("unexpected assistant context: %q", msgs[2].Content)
	}
	if msgs[3].Content != "make the header blue" {
		t.Fatalf("expected new prompt last, got %q", msgs[3].Content)
	}
}

func TestBuildMessagesSkipsEmptyContext(t *testing.T) {
	msgs := BuildMessages(&Request{Prompt: "p", ExistingHTML: "<html></html>"})
	if len(msgs) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(msgs))
	}
	if msgs[1].Role != schema.Assistant {
		t.Fatalf("expected assistant context second, got %v", msgs[1].Role)
	}
}
