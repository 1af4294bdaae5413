package services

import (
	"context"
	"testing"
	"time"

	"github.com/NullPointer-coder/Chengkai-Jingbo-JK-FinalProject-sub000/models"
)

// fakeAuth simulates an identity provider that answers with the combined
// invalid-credential code, the way current providers do.
type fakeAuth struct {
	accounts     map[string]string // email -> password
	combinedCode bool

	verificationSent chan string
	displayName      string
}

func newFakeAuth() *fakeAuth {
	return &fakeAuth{
		accounts:         map[string]string{},
		verificationSent: make(chan string, 1),
	}
}

func (f *fakeAuth) SignIn(_ context.Context, email, password string) (*AuthSession, error) {
	pw, ok := f.accounts[email]
	if ok && pw == password {
		return &AuthSession{UserID: "uid-" + email, Email: email, IDToken: "tok-" + email}, nil
	}
	if f.combinedCode {
		return nil, &IdentityError{Code: CodeInvalidCredential}
	}
	if !ok {
		return nil, &IdentityError{Code: CodeEmailNotFound}
	}
	return nil, &IdentityError{Code: CodeInvalidPassword}
}

func (f *fakeAuth) SignUp(_ context.Context, email, password string) (*AuthSession, error) {
	if _, ok := f.accounts[email]; ok {
		return nil, &IdentityError{Code: CodeEmailExists}
	}
	f.accounts[email] = password
	return &AuthSession{UserID: "uid-" + email, Email: email, IDToken: "tok-" + email}, nil
}

func (f *fakeAuth) SignInMethods(_ context.Context, email string) ([]string, error) {
	if _, ok := f.accounts[email]; ok {
		return []string{"password"}, nil
	}
	return nil, nil
}

func (f *fakeAuth) SendVerificationEmail(_ context.Context, idToken string) error {
	f.verificationSent <- idToken
	return nil
}

func (f *fakeAuth) SendPasswordReset(_ context.Context, _ string) error { return nil }

func (f *fakeAuth) UpdateDisplayName(_ context.Context, _, name string) error {
	f.displayName = name
	return nil
}

func (f *fakeAuth) Lookup(_ context.Context, idToken string) (*models.User, error) {
	return &models.User{UserID: "uid", Username: f.displayName}, nil
}

func TestLoginWrongPasswordForExistingAccountIsError(t *testing.T) {
	auth := newFakeAuth()
	auth.accounts["a@b.com"] = "right"
	auth.combinedCode = true
	svc := NewUserService(auth, newFakeRemote())

	res := svc.Login(context.Background(), "a@b.com", "wrong")
	if res.Status != LoginError {
		t.Fatalf("status = %q, want %q", res.Status, LoginError)
	}
}

func TestLoginUnknownAccountIsUserNotFound(t *testing.T) {
	auth := newFakeAuth()
	auth.combinedCode = true
	svc := NewUserService(auth, newFakeRemote())

	res := svc.Login(context.Background(), "nobody@b.com", "pw")
	if res.Status != LoginUserNotFound {
		t.Fatalf("status = %q, want %q", res.Status, LoginUserNotFound)
	}
}

func TestLoginExplicitEmailNotFoundCode(t *testing.T) {
	svc := NewUserService(newFakeAuth(), newFakeRemote())

	res := svc.Login(context.Background(), "nobody@b.com", "pw")
	if res.Status != LoginUserNotFound {
		t.Fatalf("status = %q, want %q", res.Status, LoginUserNotFound)
	}
}

func TestLoginSuccessKeepsSession(t *testing.T) {
	auth := newFakeAuth()
	auth.accounts["a@b.com"] = "pw"
	svc := NewUserService(auth, newFakeRemote())

	res := svc.Login(context.Background(), "a@b.com", "pw")
	if res.Status != LoginSuccess {
		t.Fatalf("status = %q", res.Status)
	}
	if svc.Session() == nil {
		t.Fatal("session not retained after success")
	}
}

func TestRegisterSendsVerificationEmail(t *testing.T) {
	auth := newFakeAuth()
	svc := NewUserService(auth, newFakeRemote())

	verified, err := svc.Register(context.Background(), "new@b.com", "pw", "newbie")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if verified {
		t.Fatal("fresh account reported as verified")
	}
	if auth.displayName != "newbie" {
		t.Fatalf("display name = %q", auth.displayName)
	}

	select {
	case <-auth.verificationSent:
	case <-time.After(2 * time.Second):
		t.Fatal("verification email was never sent")
	}
}

func TestFetchFavoritesSwallowsErrors(t *testing.T) {
	remote := newFakeRemote()
	remote.failGet = true
	svc := NewUserService(newFakeAuth(), remote)

	favorites := svc.FetchFavorites(context.Background(), "uid-1")
	if favorites == nil || len(favorites) != 0 {
		t.Fatalf("favorites = %v, want empty list", favorites)
	}
}

func TestFetchFavoritesReturnsStoredRecords(t *testing.T) {
	remote := newFakeRemote()
	svc := NewUserService(newFakeAuth(), remote)
	ctx := context.Background()

	detail := models.RecipeDetail{RecipeID: 7, Name: "Stew"}
	if err := svc.SaveFavorite(ctx, "uid-1", detail); err != nil {
		t.Fatalf("save favorite: %v", err)
	}

	favorites := svc.FetchFavorites(ctx, "uid-1")
	if len(favorites) != 1 || favorites[0].RecipeID != 7 {
		t.Fatalf("favorites = %+v", favorites)
	}

	if err := svc.RemoveFavorite(ctx, "uid-1", 7); err != nil {
		t.Fatalf("remove favorite: %v", err)
	}
	if got := svc.FetchFavorites(ctx, "uid-1"); len(got) != 0 {
		t.Fatalf("favorites after remove = %+v", got)
	}
}

func TestRefreshSessionWithoutSession(t *testing.T) {
	svc := NewUserService(newFakeAuth(), newFakeRemote())

	if svc.RefreshSessionIfNeeded(context.Background(), "a@b.com", "pw") {
		t.Fatal("refresh reported success with no session")
	}
}

func TestRefreshSessionReauthenticates(t *testing.T) {
	auth := newFakeAuth()
	auth.accounts["a@b.com"] = "pw"
	svc := NewUserService(auth, newFakeRemote())
	ctx := context.Background()

	if res := svc.Login(ctx, "a@b.com", "pw"); res.Status != LoginSuccess {
		t.Fatalf("login: %q", res.Status)
	}
	if !svc.RefreshSessionIfNeeded(ctx, "a@b.com", "pw") {
		t.Fatal("refresh failed with valid credentials")
	}
	if svc.RefreshSessionIfNeeded(ctx, "a@b.com", "stale") {
		t.Fatal("refresh succeeded with bad credentials")
	}
}
