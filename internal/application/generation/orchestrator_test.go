package generation

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"pagesmith-ai-api/internal/application/quota"
	"pagesmith-ai-api/internal/application/usage"
	"pagesmith-ai-api/internal/domain/entity"
	apperrors "pagesmith-ai-api/pkg/errors"
)

type fakeChatModel struct {
	fragments []string
	streamErr error
	calls     int
	lastOpts  []model.Option
}

func (f *fakeChatModel) Generate(ctx context.Context, in []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	return schema.AssistantMessage(strings.Join(f.fragments, ""), nil), nil
}

func (f *fakeChatModel) Stream(ctx context.Context, in []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	f.calls++
	f.lastOpts = opts
	if f.streamErr != nil {
		return nil, f.streamErr
	}
	msgs := make([]*schema.Message, 0, len(f.fragments))
	for _, frag := range f.fragments {
		msgs = append(msgs, schema.AssistantMessage(frag, nil))
	}
	return schema.StreamReaderFromArray(msgs), nil
}

type fakeFactory struct {
	chatModel *fakeChatModel
}

func (f *fakeFactory) Get(ctx context.Context, provider *entity.Provider) (model.BaseChatModel, error) {
	return f.chatModel, nil
}

func newTestOrchestrator(cm *fakeChatModel) *Orchestrator {
	return NewOrchestrator(NewRegistry(), quota.NewGuard(2), &fakeFactory{chatModel: cm}, usage.NewRecorder(nil))
}

func drain(t *testing.T, reader *schema.StreamReader[string]) (string, error) {
	t.Helper()
	defer reader.Close()
	var b strings.Builder
	for {
		frag, err := reader.Recv()
		if errors.Is(err, io.EOF) {
			return b.String(), nil
		}
		if err != nil {
			return b.String(), err
		}
		b.WriteString(frag)
	}
}

func TestStreamEmitsFragmentsInOrder(t *testing.T) {
	cm := &fakeChatModel{fragments: []string{"<html>", "<body>Hi</body>", "</html>"}}
	o := newTestOrchestrator(cm)

	reader, provider, err := o.Stream(context.Background(), &Request{Prompt: "a site"}, Caller{ClientID: "1.2.3.4", Authenticated: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if provider.Key != defaultProviderKey {
		t.Fatalf("expected default provider, got %q", provider.Key)
	}

	out, err := drain(t, reader)
	if err != nil {
		t.Fatalf("unexpected stream error: %v", err)
	}
	if out != "<html><body>Hi</body></html>" {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestStreamQuirkyProviderTrimsAfterMarker(t *testing.T) {
	cm := &fakeChatModel{fragments: []string{"<html>", "<body>Hi</body>", "</html>EXTRA"}}
	o := newTestOrchestrator(cm)

	reader, _, err := o.Stream(context.Background(), &Request{Prompt: "a site", Provider: "sambanova"},
		Caller{ClientID: "1.2.3.4", Authenticated: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out, err := drain(t, reader)
	if err != nil {
		t.Fatalf("unexpected stream error: %v", err)
	}
	if out != "<html><body>Hi</body></html>" {
		t.Fatalf("expected trailing content discarded, got %q", out)
	}
}

func TestStreamNonQuirkyProviderKeepsTrailingContent(t *testing.T) {
	cm := &fakeChatModel{fragments: []string{"<html>", "<body>Hi</body>", "</html>EXTRA", "NEVER SENT"}}
	o := newTestOrchestrator(cm)

	reader, _, err := o.Stream(context.Background(), &Request{Prompt: "a site", Provider: "novita"},
		Caller{ClientID: "1.2.3.4", Authenticated: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out, err := drain(t, reader)
	if err != nil {
		t.Fatalf("unexpected stream error: %v", err)
	}
	if out != "<html><body>Hi</body></html>EXTRA" {
		t.Fatalf("expected fragment kept verbatim, got %q", out)
	}
}

func TestStreamMarkerSplitAcrossFragments(t *testing.T) {
	cm := &fakeChatModel{fragments: []string{"<html><body>Hi</body></ht", "ml>", "NEVER SENT"}}
	o := newTestOrchestrator(cm)

	reader, _, err := o.Stream(context.Background(), &Request{Prompt: "a site", Provider: "novita"},
		Caller{ClientID: "1.2.3.4", Authenticated: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out, err := drain(t, reader)
	if err != nil {
		t.Fatalf("unexpected stream error: %v", err)
	}
	if out != "<html><body>Hi</body></html>" {
		t.Fatalf("expected stop at split marker, got %q", out)
	}
}

func TestStreamUnterminatedEndsWithoutError(t *testing.T) {
	cm := &fakeChatModel{fragments: []string{"<html>", "<body>partial"}}
	o := newTestOrchestrator(cm)

	reader, _, err := o.Stream(context.Background(), &Request{Prompt: "a site"},
		Caller{ClientID: "1.2.3.4", Authenticated: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out, err := drain(t, reader)
	if err != nil {
		t.Fatalf("unterminated stream must not error, got %v", err)
	}
	if out != "<html><body>partial" {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestStreamContextTooLargePreflight(t *testing.T) {
	cm := &fakeChatModel{fragments: []string{"never"}}
	o := newTestOrchestrator(cm)

	_, _, err := o.Stream(context.Background(), &Request{
		Prompt:   strings.Repeat("x", 9000),
		Provider: "sambanova",
	}, Caller{ClientID: "1.2.3.4", Authenticated: true})
	if !apperrors.IsCode(err, apperrors.CodeContextTooLarge) {
		t.Fatalf("expected ContextTooLarge, got %v", err)
	}
	if !strings.Contains(err.Error(), "SambaNova") {
		t.Fatalf("error should name the provider: %v", err)
	}
	if cm.calls != 0 {
		t.Fatalf("expected zero backend calls, got %d", cm.calls)
	}
}

func TestStreamAutoProviderSkipsBudgetCheck(t *testing.T) {
	cm := &fakeChatModel{fragments: []string{"<html></html>"}}
	o := newTestOrchestrator(cm)

	// 超过 sambanova 上限但使用 auto：不做预检
	reader, _, err := o.Stream(context.Background(), &Request{
		Prompt: strings.Repeat("x", 9000),
	}, Caller{ClientID: "1.2.3.4", Authenticated: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := drain(t, reader); err != nil {
		t.Fatalf("unexpected stream error: %v", err)
	}
}

func TestStreamQuotaDeniesThirdAnonymousCall(t *testing.T) {
	cm := &fakeChatModel{fragments: []string{"<html></html>"}}
	o := newTestOrchestrator(cm)
	caller := Caller{ClientID: "10.0.0.9"}

	for i := 0; i < 2; i++ {
		reader, _, err := o.Stream(context.Background(), &Request{Prompt: "a site"}, caller)
		if err != nil {
			t.Fatalf("call %d: unexpected error: %v", i+1, err)
		}
		if _, err := drain(t, reader); err != nil {
			t.Fatalf("call %d: unexpected stream error: %v", i+1, err)
		}
	}

	_, _, err := o.Stream(context.Background(), &Request{Prompt: "a site"}, caller)
	if !apperrors.IsCode(err, apperrors.CodeQuotaExceeded) {
		t.Fatalf("expected QuotaExceeded on third call, got %v", err)
	}
	if cm.calls != 2 {
		t.Fatalf("denied call must not reach the backend, calls=%d", cm.calls)
	}
}

func TestStreamOmitsMaxTokensWhenUnsupported(t *testing.T) {
	cm := &fakeChatModel{fragments: []string{"<html></html>"}}
	o := newTestOrchestrator(cm)

	reader, _, err := o.Stream(context.Background(), &Request{Prompt: "a site", Provider: "sambanova"},
		Caller{ClientID: "1.2.3.4", Authenticated: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := drain(t, reader); err != nil {
		t.Fatalf("unexpected stream error: %v", err)
	}

	got := model.GetCommonOptions(&model.Options{}, cm.lastOpts...)
	if got.MaxTokens != nil {
		t.Fatalf("expected no max_tokens option, got %d", *got.MaxTokens)
	}
}

func TestStreamSetsMaxTokensWhenSupported(t *testing.T) {
	cm := &fakeChatModel{fragments: []string{"<html></html>"}}
	o := newTestOrchestrator(cm)

	reader, _, err := o.Stream(context.Background(), &Request{Prompt: "a site", Provider: "nebius"},
		Caller{ClientID: "1.2.3.4", Authenticated: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := drain(t, reader); err != nil {
		t.Fatalf("unexpected stream error: %v", err)
	}

	got := model.GetCommonOptions(&model.Options{}, cm.lastOpts...)
	if got.MaxTokens == nil || *got.MaxTokens != 41000 {
		t.Fatalf("expected max_tokens 41000, got %v", got.MaxTokens)
	}
}

func TestStreamPaymentRequiredFromBackend(t *testing.T) {
	cm := &fakeChatModel{streamErr: errors.New("402 you have exceeded your monthly included credits")}
	o := newTestOrchestrator(cm)

	_, _, err := o.Stream(context.Background(), &Request{Prompt: "a site"},
		Caller{ClientID: "1.2.3.4", Authenticated: true})
	if !apperrors.IsCode(err, apperrors.CodePaymentRequired) {
		t.Fatalf("expected PaymentRequired, got %v", err)
	}
}

func TestStreamGenericBackendFailure(t *testing.T) {
	cm := &fakeChatModel{streamErr: errors.New("upstream unavailable")}
	o := newTestOrchestrator(cm)

	_, _, err := o.Stream(context.Background(), &Request{Prompt: "a site"},
		Caller{ClientID: "1.2.3.4", Authenticated: true})
	if !apperrors.IsCode(err, apperrors.CodeGenerationFailed) {
		t.Fatalf("expected GenerationFailed, got %v", err)
	}
}

func TestStreamEmptyPromptRejected(t *testing.T) {
	o := newTestOrchestrator(&fakeChatModel{})
	_, _, err := o.Stream(context.Background(), &Request{Prompt: "   "},
		Caller{ClientID: "1.2.3.4", Authenticated: true})
	if !apperrors.IsCode(err, apperrors.CodeInvalidRequest) {
		t.Fatalf("expected InvalidRequest, got %v", err)
	}
}
