package deploy

import (
	"context"
	"errors"
	"strings"
	"testing"

	apperrors "pagesmith-ai-api/pkg/errors"
)

type fakeHub struct {
	namespace string
	whoAmIErr error
	createErr error
	uploadErr error

	created  []string
	uploaded map[string][]File
	calls    int
}

func (f *fakeHub) WhoAmI(ctx context.Context, token string) (string, error) {
	f.calls++
	if f.whoAmIErr != nil {
		return "", f.whoAmIErr
	}
	return f.namespace, nil
}

func (f *fakeHub) CreateSpace(ctx context.Context, token, spaceID string) error {
	f.calls++
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, spaceID)
	return nil
}

func (f *fakeHub) UploadFiles(ctx context.Context, token, spaceID string, files []File) error {
	f.calls++
	if f.uploadErr != nil {
		return f.uploadErr
	}
	if f.uploaded == nil {
		f.uploaded = make(map[string][]File)
	}
	f.uploaded[spaceID] = files
	return nil
}

func TestSlugify(t *testing.T) {
	cases := []struct {
		title string
		want  string
	}{
		{"My Cool Site!! 2024", "my-cool-site-2024"},
		{"  Bakery & Café  ", "bakery-caf"},
		{"UPPER", "upper"},
		{"---", ""},
		{"a--b__c", "a-b-c"},
	}
	for _, tc := range cases {
		if got := Slugify(tc.title); got != tc.want {
			t.Fatalf("Slugify(%q) = %q, want %q", tc.title, got, tc.want)
		}
	}
}

func TestSlugifyCapsLength(t *testing.T) {
	long := strings.Repeat("a", 200)
	got := Slugify(long)
	if len(got) != 96 {
		t.Fatalf("expected 96 chars, got %d", len(got))
	}
}

func TestDeployNewSpaceComposesFullFileSet(t *testing.T) {
	hub := &fakeHub{namespace: "alice"}
	p := NewPipeline(hub)

	doc := "<html><body>Hi</body></html>"
	spaceID, err := p.Deploy(context.Background(), &Input{
		Document: doc,
		Title:    "My Cool Site!! 2024",
		Prompts:  []string{"a site", "make it blue"},
	}, "tok")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if spaceID != "alice/my-cool-site-2024" {
		t.Fatalf("unexpected space id: %q", spaceID)
	}
	if len(hub.created) != 1 || hub.created[0] != spaceID {
		t.Fatalf("space not created: %v", hub.created)
	}

	files := hub.uploaded[spaceID]
	if len(files) != 3 {
		t.Fatalf("expected 3 files for a new space, got %d", len(files))
	}
	byPath := map[string]string{}
	for _, f := range files {
		byPath[f.Path] = string(f.Content)
	}

	html, ok := byPath[EntryFile]
	if !ok {
		t.Fatal("entry file missing")
	}
	if !strings.Contains(html, AttributionFragment(spaceID)) {
		t.Fatal("attribution fragment not injected")
	}
	if !strings.HasSuffix(html, AttributionFragment(spaceID)+"</body></html>") {
		t.Fatalf("attribution not placed before closing body tag: %q", html)
	}

	if byPath[PromptLogFile] != "a site\nmake it blue" {
		t.Fatalf("unexpected prompt log: %q", byPath[PromptLogFile])
	}

	manifest := byPath[ManifestFile]
	if !strings.Contains(manifest, "title: My Cool Site!! 2024") {
		t.Fatalf("manifest missing title: %q", manifest)
	}
	if !strings.Contains(manifest, "sdk: static") {
		t.Fatalf("manifest missing static sdk: %q", manifest)
	}
	for _, field := range []string{"colorFrom: ", "colorTo: "} {
		line := extractLine(t, manifest, field)
		color := strings.TrimPrefix(line, field)
		if !containsString(spaceColors, color) {
			t.Fatalf("color %q not in palette", color)
		}
	}
}

func TestDeployExistingSpaceSkipsCreateAndManifest(t *testing.T) {
	hub := &fakeHub{namespace: "alice"}
	p := NewPipeline(hub)

	spaceID, err := p.Deploy(context.Background(), &Input{
		Document: "<html><body>Hi</body></html>",
		SpaceID:  "alice/site1",
		Prompts:  []string{"a site"},
	}, "tok")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if spaceID != "alice/site1" {
		t.Fatalf("expected existing id reused, got %q", spaceID)
	}
	if len(hub.created) != 0 {
		t.Fatalf("existing space must not be re-created: %v", hub.created)
	}

	files := hub.uploaded[spaceID]
	if len(files) != 2 {
		t.Fatalf("expected 2 files for an existing space, got %d", len(files))
	}
	for _, f := range files {
		if f.Path == ManifestFile {
			t.Fatal("manifest must not be uploaded for an existing space")
		}
	}
}

func TestDeployMissingTitleAndSpaceID(t *testing.T) {
	hub := &fakeHub{namespace: "alice"}
	p := NewPipeline(hub)

	_, err := p.Deploy(context.Background(), &Input{Document: "<html></html>"}, "tok")
	if !apperrors.IsCode(err, apperrors.CodeInvalidRequest) {
		t.Fatalf("expected InvalidRequest, got %v", err)
	}
	if hub.calls != 0 {
		t.Fatalf("expected zero hub calls, got %d", hub.calls)
	}
}

func TestDeployEmptyDocumentRejected(t *testing.T) {
	hub := &fakeHub{namespace: "alice"}
	p := NewPipeline(hub)

	_, err := p.Deploy(context.Background(), &Input{Title: "site"}, "tok")
	if !apperrors.IsCode(err, apperrors.CodeInvalidRequest) {
		t.Fatalf("expected InvalidRequest, got %v", err)
	}
	if hub.calls != 0 {
		t.Fatalf("expected zero hub calls, got %d", hub.calls)
	}
}

func TestDeployHubFailuresSurfaceAsDeploymentFailed(t *testing.T) {
	cases := []struct {
		name string
		hub  *fakeHub
	}{
		{"whoami", &fakeHub{whoAmIErr: errors.New("identity down")}},
		{"create", &fakeHub{namespace: "alice", createErr: errors.New("conflict")}},
		{"upload", &fakeHub{namespace: "alice", uploadErr: errors.New("storage down")}},
	}
	for _, tc := range cases {
		p := NewPipeline(tc.hub)
		_, err := p.Deploy(context.Background(), &Input{Document: "<html></html>", Title: "site"}, "tok")
		if !apperrors.IsCode(err, apperrors.CodeDeploymentFailed) {
			t.Fatalf("%s: expected DeploymentFailed, got %v", tc.name, err)
		}
	}
}

func TestAttributionRoundTrip(t *testing.T) {
	doc := "<html><body>Hello</body></html>"
	injected := InjectAttribution(doc, "alice/site1")
	if injected == doc {
		t.Fatal("attribution not injected")
	}
	if got := StripAttribution(injected, "alice/site1"); got != doc {
		t.Fatalf("round trip mismatch: %q", got)
	}
}

func TestStripAttributionWrongSpaceIsNoop(t *testing.T) {
	injected := InjectAttribution("<html><body>Hello</body></html>", "alice/site1")
	if got := StripAttribution(injected, "bob/other"); got != injected {
		t.Fatalf("fragment for another space must not match: %q", got)
	}
}

func extractLine(t *testing.T, text, prefix string) string {
	t.Helper()
	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(line, prefix) {
			return line
		}
	}
	t.Fatalf("line with prefix %q not found in %q", prefix, text)
	return ""
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
