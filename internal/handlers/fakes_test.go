package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gorilla/sessions"
	echosession "github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/yaoyun631/team-me-crm-firebase/internal/models"
	"github.com/yaoyun631/team-me-crm-firebase/internal/repositories"
	"github.com/yaoyun631/team-me-crm-firebase/internal/view"
)

// newTestEcho builds an Echo instance with the real renderer and an
// in-memory cookie session, matching the production middleware stack
// minus the login gate.
func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Renderer = view.NewRenderer()
	e.Use(echosession.Middleware(sessions.NewCookieStore([]byte("test-secret"))))
	return e
}

func doForm(e *echo.Echo, method, target string, form url.Values) *httptest.ResponseRecorder {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func doMultipart(t *testing.T, e *echo.Echo, target, field, filename string, content []byte) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, target, &buf)
	req.Header.Set(echo.HeaderContentType, mw.FormDataContentType())
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

// decodeFields round-trips a Firestore-style field map through JSON into a
// model struct; the json tags mirror the firestore tags.
func decodeFields(fields map[string]interface{}, out interface{}) {
	raw, err := json.Marshal(fields)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		panic(err)
	}
}

func copyFields(fields map[string]interface{}) map[string]interface{} {
	cp := make(map[string]interface{}, len(fields))
	for k, v := range fields {
		cp[k] = v
	}
	return cp
}

// --- buyer repository ---

type fakeBuyerRepo struct {
	docs map[string]map[string]interface{}
	seq  int
}

func newFakeBuyerRepo() *fakeBuyerRepo {
	return &fakeBuyerRepo{docs: map[string]map[string]interface{}{}}
}

func (r *fakeBuyerRepo) ListBuyers(ctx context.Context) ([]models.Buyer, error) {
	var buyers []models.Buyer
	for id, fields := range r.docs {
		var b models.Buyer
		decodeFields(fields, &b)
		b.ID = id
		buyers = append(buyers, b)
	}
	return buyers, nil
}

func (r *fakeBuyerRepo) GetBuyer(ctx context.Context, id string) (*models.Buyer, error) {
	fields, ok := r.docs[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	var b models.Buyer
	decodeFields(fields, &b)
	b.ID = id
	return &b, nil
}

func (r *fakeBuyerRepo) CreateBuyer(ctx context.Context, fields map[string]interface{}) (string, error) {
	r.seq++
	id := fmt.Sprintf("buyer-%d", r.seq)
	r.docs[id] = copyFields(fields)
	return id, nil
}

func (r *fakeBuyerRepo) UpdateBuyer(ctx context.Context, id string, fields map[string]interface{}) error {
	doc, ok := r.docs[id]
	if !ok {
		return repositories.ErrNotFound
	}
	for k, v := range fields {
		doc[k] = v
	}
	return nil
}

func (r *fakeBuyerRepo) DeleteBuyer(ctx context.Context, id string) error {
	delete(r.docs, id)
	return nil
}

// --- seller repository ---

type fakeSellerRepo struct {
	docs map[string]map[string]interface{}
	seq  int
}

func newFakeSellerRepo() *fakeSellerRepo {
	return &fakeSellerRepo{docs: map[string]map[string]interface{}{}}
}

func (r *fakeSellerRepo) ListSellers(ctx context.Context) ([]models.Seller, error) {
	var sellers []models.Seller
	for id, fields := range r.docs {
		var s models.Seller
		decodeFields(fields, &s)
		s.ID = id
		sellers = append(sellers, s)
	}
	return sellers, nil
}

func (r *fakeSellerRepo) GetSeller(ctx context.Context, id string) (*models.Seller, error) {
	fields, ok := r.docs[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	var s models.Seller
	decodeFields(fields, &s)
	s.ID = id
	return &s, nil
}

func (r *fakeSellerRepo) CreateSeller(ctx context.Context, fields map[string]interface{}) (string, error) {
	r.seq++
	id := fmt.Sprintf("seller-%d", r.seq)
	r.docs[id] = copyFields(fields)
	return id, nil
}

func (r *fakeSellerRepo) UpdateSeller(ctx context.Context, id string, fields map[string]interface{}) error {
	doc, ok := r.docs[id]
	if !ok {
		return repositories.ErrNotFound
	}
	for k, v := range fields {
		doc[k] = v
	}
	return nil
}

func (r *fakeSellerRepo) DeleteSeller(ctx context.Context, id string) error {
	delete(r.docs, id)
	return nil
}

// --- followup repository ---

type fakeFollowupDoc struct {
	parentID string
	fields   map[string]interface{}
}

type fakeFollowupRepo struct {
	docs map[string]fakeFollowupDoc
	seq  int
}

func newFakeFollowupRepo() *fakeFollowupRepo {
	return &fakeFollowupRepo{docs: map[string]fakeFollowupDoc{}}
}

func (r *fakeFollowupRepo) add(parentID string, fields map[string]interface{}) string {
	r.seq++
	id := fmt.Sprintf("followup-%d", r.seq)
	r.docs[id] = fakeFollowupDoc{parentID: parentID, fields: copyFields(fields)}
	return id
}

func (r *fakeFollowupRepo) ListByParent(ctx context.Context, parentID string) ([]models.Followup, error) {
	var followups []models.Followup
	for id, doc := range r.docs {
		if doc.parentID != parentID {
			continue
		}
		var f models.Followup
		decodeFields(doc.fields, &f)
		f.ID = id
		f.ParentID = doc.parentID
		followups = append(followups, f)
	}
	return followups, nil
}

func (r *fakeFollowupRepo) GetFollowup(ctx context.Context, id string) (*models.Followup, error) {
	doc, ok := r.docs[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	var f models.Followup
	decodeFields(doc.fields, &f)
	f.ID = id
	f.ParentID = doc.parentID
	return &f, nil
}

func (r *fakeFollowupRepo) CreateFollowup(ctx context.Context, parentID string, fields map[string]interface{}) (string, error) {
	return r.add(parentID, fields), nil
}

func (r *fakeFollowupRepo) UpdateFollowup(ctx context.Context, id string, fields map[string]interface{}) error {
	doc, ok := r.docs[id]
	if !ok {
		return repositories.ErrNotFound
	}
	for k, v := range fields {
		doc.fields[k] = v
	}
	return nil
}

func (r *fakeFollowupRepo) DeleteFollowup(ctx context.Context, id string) error {
	delete(r.docs, id)
	return nil
}

func (r *fakeFollowupRepo) DeleteByParent(ctx context.Context, parentID string) error {
	for id, doc := range r.docs {
		if doc.parentID == parentID {
			delete(r.docs, id)
		}
	}
	return nil
}

// --- blog post repository ---

type fakePostRepo struct {
	docs map[string]map[string]interface{}
	seq  int
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{docs: map[string]map[string]interface{}{}}
}

func (r *fakePostRepo) ListPosts(ctx context.Context) ([]models.BlogPost, error) {
	var posts []models.BlogPost
	for id, fields := range r.docs {
		var p models.BlogPost
		decodeFields(fields, &p)
		p.ID = id
		posts = append(posts, p)
	}
	return posts, nil
}

func (r *fakePostRepo) GetPost(ctx context.Context, id string) (*models.BlogPost, error) {
	fields, ok := r.docs[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	var p models.BlogPost
	decodeFields(fields, &p)
	p.ID = id
	return &p, nil
}

func (r *fakePostRepo) CreatePost(ctx context.Context, fields map[string]interface{}) (string, error) {
	r.seq++
	id := fmt.Sprintf("post-%d", r.seq)
	r.docs[id] = copyFields(fields)
	return id, nil
}

func (r *fakePostRepo) UpdatePost(ctx context.Context, id string, fields map[string]interface{}) error {
	doc, ok := r.docs[id]
	if !ok {
		return repositories.ErrNotFound
	}
	for k, v := range fields {
		doc[k] = v
	}
	return nil
}

func (r *fakePostRepo) DeletePost(ctx context.Context, id string) error {
	delete(r.docs, id)
	return nil
}

// --- user repository ---

type fakeUserRepo struct {
	users map[string]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*models.User{}}
}

func (r *fakeUserRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	user, ok := r.users[email]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return user, nil
}

func (r *fakeUserRepo) CreateUser(ctx context.Context, user *models.User) (string, error) {
	id := fmt.Sprintf("user-%d", len(r.users)+1)
	user.ID = id
	r.users[user.Email] = user
	return id, nil
}

// --- photo store ---

type fakePhotoStore struct {
	uploaded []string
	deleted  []string
	err      error
}

func (s *fakePhotoStore) Upload(ctx context.Context, objectPath string, file io.Reader) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.uploaded = append(s.uploaded, objectPath)
	return "https://storage.googleapis.com/test-bucket/" + objectPath, nil
}

func (s *fakePhotoStore) DeleteByURL(ctx context.Context, rawURL string) {
	s.deleted = append(s.deleted, rawURL)
}
