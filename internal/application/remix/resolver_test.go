package remix

import (
	"context"
	"errors"
	"testing"

	"pagesmith-ai-api/internal/application/deploy"
	apperrors "pagesmith-ai-api/pkg/errors"
)

type fakeHubReader struct {
	info    *SpaceInfo
	infoErr error
	raw     string
	rawErr  error
	user    string
	userErr error
}

func (f *fakeHubReader) SpaceInfo(ctx context.Context, spaceID string) (*SpaceInfo, error) {
	if f.infoErr != nil {
		return nil, f.infoErr
	}
	return f.info, nil
}

func (f *fakeHubReader) RawFile(ctx context.Context, spaceID, path string) (string, error) {
	if f.rawErr != nil {
		return "", f.rawErr
	}
	if path != deploy.EntryFile {
		return "", errors.New("unexpected path: " + path)
	}
	return f.raw, nil
}

func (f *fakeHubReader) Userinfo(ctx context.Context, token string) (string, error) {
	if f.userErr != nil {
		return "", f.userErr
	}
	return f.user, nil
}

func TestResolveStripsAttribution(t *testing.T) {
	original := "<html><body>Hello</body></html>"
	hub := &fakeHubReader{
		info: &SpaceInfo{SDK: "static", Author: "alice"},
		raw:  deploy.InjectAttribution(original, "alice/site1"),
	}
	r := NewResolver(hub)

	res, err := r.Resolve(context.Background(), "alice/site1", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.HTML != original {
		t.Fatalf("attribution not stripped: %q", res.HTML)
	}
	if res.SpaceID != "alice/site1" {
		t.Fatalf("unexpected space id: %q", res.SpaceID)
	}
	if res.IsOwner {
		t.Fatal("anonymous caller must not be owner")
	}
}

func TestResolveMissingSpace(t *testing.T) {
	r := NewResolver(&fakeHubReader{infoErr: errors.New("404")})
	_, err := r.Resolve(context.Background(), "alice/missing", "")
	if !apperrors.IsCode(err, apperrors.CodeSpaceNotFound) {
		t.Fatalf("expected SpaceNotFound, got %v", err)
	}
}

func TestResolvePrivateSpace(t *testing.T) {
	r := NewResolver(&fakeHubReader{info: &SpaceInfo{SDK: "static", Private: true, Author: "alice"}})
	_, err := r.Resolve(context.Background(), "alice/private", "")
	if !apperrors.IsCode(err, apperrors.CodeSpaceNotFound) {
		t.Fatalf("expected SpaceNotFound for private space, got %v", err)
	}
}

func TestResolveWrongSDK(t *testing.T) {
	r := NewResolver(&fakeHubReader{info: &SpaceInfo{SDK: "gradio", Author: "alice"}})
	_, err := r.Resolve(context.Background(), "alice/app", "")
	if !apperrors.IsCode(err, apperrors.CodeSpaceNotFound) {
		t.Fatalf("expected SpaceNotFound for non-static space, got %v", err)
	}
}

func TestResolveRawFetchFailure(t *testing.T) {
	r := NewResolver(&fakeHubReader{
		info:   &SpaceInfo{SDK: "static", Author: "alice"},
		rawErr: errors.New("404"),
	})
	_, err := r.Resolve(context.Background(), "alice/site1", "")
	if !apperrors.IsCode(err, apperrors.CodeSpaceNotFound) {
		t.Fatalf("expected SpaceNotFound, got %v", err)
	}
}

func TestResolveOwnership(t *testing.T) {
	hub := &fakeHubReader{
		info: &SpaceInfo{SDK: "static", Author: "alice"},
		raw:  "<html></html>",
		user: "alice",
	}
	r := NewResolver(hub)

	res, err := r.Resolve(context.Background(), "alice/site1", "tok")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.IsOwner {
		t.Fatal("author should be owner")
	}
}

func TestResolveNonOwner(t *testing.T) {
	hub := &fakeHubReader{
		info: &SpaceInfo{SDK: "static", Author: "alice"},
		raw:  "<html></html>",
		user: "bob",
	}
	r := NewResolver(hub)

	res, err := r.Resolve(context.Background(), "alice/site1", "tok")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.IsOwner {
		t.Fatal("non-author must not be owner")
	}
}

func TestResolveInvalidCredentialYieldsNonOwner(t *testing.T) {
	hub := &fakeHubReader{
		info:    &SpaceInfo{SDK: "static", Author: "alice"},
		raw:     "<html></html>",
		userErr: errors.New("401"),
	}
	r := NewResolver(hub)

	res, err := r.Resolve(context.Background(), "alice/site1", "bad")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.IsOwner {
		t.Fatal("invalid credential must not grant ownership")
	}
}
