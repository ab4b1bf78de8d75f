package media

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/url"
	"strings"
	"testing"
	"time"

	credentialspb "cloud.google.com/go/iam/credentials/apiv1/credentialspb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUploader struct {
	params    UploadParams
	body      []byte
	destroyed []string
	err       error
}

func (f *fakeUploader) Upload(_ context.Context, r io.Reader, p UploadParams) (*Asset, error) {
	if f.err != nil {
		return nil, f.err
	}
	b, _ := io.ReadAll(r)
	f.params, f.body = p, b
	return &Asset{
		SecureURL:    "https://res.cloudinary.com/demo/" + p.Folder + "/" + p.PublicID,
		PublicID:     p.Folder + "/" + p.PublicID,
		ResourceType: string(p.Kind),
		Bytes:        int64(len(b)),
	}, nil
}

func (f *fakeUploader) Destroy(_ context.Context, publicID string, _ Kind) error {
	f.destroyed = append(f.destroyed, publicID)
	return f.err
}

func TestCheck(t *testing.T) {
	assert.NoError(t, Check(KindImage, "image/png", 1024))
	assert.NoError(t, Check(KindVideo, "video/mp4", MaxVideoBytes))

	assert.True(t, IsErrBadRequest(Check("audio", "audio/mpeg", 10)))
	assert.True(t, IsErrBadRequest(Check(KindImage, "video/mp4", 10)))
	assert.True(t, IsErrBadRequest(Check(KindImage, "image/png", 0)))
	assert.True(t, IsErrTooLarge(Check(KindImage, "image/png", MaxImageBytes+1)))
	assert.True(t, IsErrTooLarge(Check(KindVideo, "video/mp4", MaxVideoBytes+1)))
}

func TestUpload(t *testing.T) {
	up := &fakeUploader{}
	svc := NewService(up)
	svc.newID = func() string { return "fixed-id" }

	a, err := svc.Upload(context.Background(), File{
		Kind: KindImage, Filename: "hero.png", ContentType: "image/png", Size: 4, Body: strings.NewReader("data"),
	})
	require.NoError(t, err)
	assert.Equal(t, "brainhints/images", up.params.Folder)
	assert.Equal(t, "fixed-id", up.params.PublicID)
	assert.Equal(t, []byte("data"), up.body)
	assert.Equal(t, "brainhints/images/fixed-id", a.PublicID)
}

func TestUpload_BodyCappedAtLimit(t *testing.T) {
	up := &fakeUploader{}
	svc := NewService(up)

	big := bytes.Repeat([]byte("x"), int(MaxImageBytes)+100)
	_, err := svc.Upload(context.Background(), File{
		Kind: KindImage, ContentType: "image/jpeg", Size: 10, Body: bytes.NewReader(big),
	})
	require.NoError(t, err)
	assert.Len(t, up.body, int(MaxImageBytes)+1)
}

func TestUpload_Errors(t *testing.T) {
	_, err := NewService(nil).Upload(context.Background(), File{Kind: KindImage})
	assert.True(t, IsErrNotConfigured(err))

	up := &fakeUploader{err: errors.New("cloudinary down")}
	_, err = NewService(up).Upload(context.Background(), File{
		Kind: KindVideo, ContentType: "video/mp4", Size: 1, Body: strings.NewReader("x"),
	})
	assert.ErrorIs(t, err, up.err)
}

func TestDelete(t *testing.T) {
	up := &fakeUploader{}
	svc := NewService(up)

	require.NoError(t, svc.Delete(context.Background(), " brainhints/images/abc ", ""))
	assert.Equal(t, []string{"brainhints/images/abc"}, up.destroyed)

	assert.True(t, IsErrBadRequest(svc.Delete(context.Background(), "", KindImage)))
	assert.True(t, IsErrBadRequest(svc.Delete(context.Background(), "x", "raw")))
}

func TestObjectPath(t *testing.T) {
	assert.Equal(t, "uploads/images/id1.png", ObjectPath(KindImage, "C:\\pics\\Hero.PNG", "id1"))
	assert.Equal(t, "uploads/videos/id2", ObjectPath(KindVideo, "", "id2"))
	assert.Equal(t, "uploads/videos/id3", ObjectPath(KindVideo, "clip.", "id3"))
	assert.Equal(t, "uploads/images/id4", ObjectPath(KindImage, "noext", "id4"))
}

type fakeBlob struct{ name string }

func (f *fakeBlob) SignBlob(_ context.Context, req *credentialspb.SignBlobRequest) ([]byte, error) {
	f.name = req.Name
	return []byte("signature"), nil
}

func TestSigner(t *testing.T) {
	blob := &fakeBlob{}
	s := newSigner("media-bucket", "signer@proj.iam.gserviceaccount.com", blob, nil)
	s.newID = func() string { return "id9" }

	out, err := s.Sign(context.Background(), SignedURLRequest{
		Kind: KindImage, Filename: "logo.svg", ContentType: "image/svg+xml", Size: 100,
	})
	require.NoError(t, err)
	assert.Equal(t, "PUT", out.Method)
	assert.Equal(t, "uploads/images/id9.svg", out.ObjectPath)
	assert.InDelta(t, time.Now().Add(900*time.Second).Unix(), out.ExpiresAt, 5)
	assert.Equal(t, "projects/-/serviceAccounts/signer@proj.iam.gserviceaccount.com", blob.name)

	u, err := url.Parse(out.URL)
	require.NoError(t, err)
	assert.Contains(t, u.Path, "uploads/images/id9.svg")
	assert.Equal(t, "GOOG4-RSA-SHA256", u.Query().Get("X-Goog-Algorithm"))

	_, err = s.Sign(context.Background(), SignedURLRequest{
		Kind: KindImage, ObjectPath: "../secrets", ContentType: "image/png", Size: 1,
	})
	assert.True(t, IsErrBadRequest(err))

	var nilSigner *Signer
	_, err = nilSigner.Sign(context.Background(), SignedURLRequest{})
	assert.True(t, IsErrNotConfigured(err))
}

type fakeRemover struct{ removed []string }

func (f *fakeRemover) Remove(_ context.Context, bucket, objectPath string) error {
	f.removed = append(f.removed, bucket+"/"+objectPath)
	return nil
}

func TestSignerDeleteObject(t *testing.T) {
	rm := &fakeRemover{}
	s := newSigner("media-bucket", "signer@proj.iam.gserviceaccount.com", &fakeBlob{}, rm)

	require.NoError(t, s.DeleteObject(context.Background(), " uploads/videos/id1.mp4 "))
	assert.Equal(t, []string{"media-bucket/uploads/videos/id1.mp4"}, rm.removed)

	assert.True(t, IsErrBadRequest(s.DeleteObject(context.Background(), "uploads/../users.json")))
	assert.True(t, IsErrBadRequest(s.DeleteObject(context.Background(), "backups/db.json")))
	assert.Len(t, rm.removed, 1)

	noStore := newSigner("media-bucket", "signer@proj.iam.gserviceaccount.com", &fakeBlob{}, nil)
	assert.True(t, IsErrNotConfigured(noStore.DeleteObject(context.Background(), "uploads/images/a.png")))
}
