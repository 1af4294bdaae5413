package services

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/NullPointer-coder/Chengkai-Jingbo-JK-FinalProject-sub000/models"
)

type LoginStatus string

const (
	LoginSuccess      LoginStatus = "success"
	LoginError        LoginStatus = "error"
	LoginUserNotFound LoginStatus = "user_not_found"
)

// LoginResult is the terminal outcome of one authentication attempt.
type LoginResult struct {
	Status  LoginStatus
	Message string
	Session *AuthSession
}

// UserService owns authentication against the identity provider and the
// per-user favorites subtree. Reads on this path (favorites, profile) are
// resilient: failures are logged and collapsed to empty results.
type UserService struct {
	auth   AuthProvider
	remote RemoteStore

	mu      sync.Mutex
	session *AuthSession
}

func NewUserService(auth AuthProvider, remote RemoteStore) *UserService {
	return &UserService{auth: auth, remote: remote}
}

// Login authenticates and classifies rejections by the provider's stable
// error code. The provider's combined invalid-credential code does not say
// whether the account exists, so only in that case the registered sign-in
// methods are fetched to tell wrong-password apart from no-such-user.
func (s *UserService) Login(ctx context.Context, email, password string) LoginResult {
	sess, err := s.auth.SignIn(ctx, email, password)
	if err == nil {
		s.setSession(sess)
		return LoginResult{Status: LoginSuccess, Session: sess}
	}

	var ie *IdentityError
	if !errors.As(err, &ie) {
		return LoginResult{Status: LoginError, Message: err.Error()}
	}

	switch ie.Code {
	case CodeEmailNotFound:
		return LoginResult{Status: LoginUserNotFound}
	case CodeInvalidPassword:
		return LoginResult{Status: LoginError, Message: "incorrect password"}
	case CodeInvalidCredential:
		methods, mErr := s.auth.SignInMethods(ctx, email)
		if mErr == nil && len(methods) == 0 {
			return LoginResult{Status: LoginUserNotFound}
		}
		return LoginResult{Status: LoginError, Message: "incorrect password"}
	default:
		return LoginResult{Status: LoginError, Message: ie.Code}
	}
}

// Register creates the account, sets the display name and fires off the
// verification email without waiting for it. Returns whether the email is
// already verified (it never is for a fresh account).
func (s *UserService) Register(ctx context.Context, email, password, username string) (bool, error) {
	sess, err := s.auth.SignUp(ctx, email, password)
	if err != nil {
		return false, err
	}
	s.setSession(sess)

	if err := s.auth.UpdateDisplayName(ctx, sess.IDToken, username); err != nil {
		log.Printf("register: set display name: %v", err)
	}

	token := sess.IDToken
	go func() {
		if err := s.auth.SendVerificationEmail(context.Background(), token); err != nil {
			log.Printf("register: send verification email: %v", err)
		}
	}()

	return sess.EmailVerified, nil
}

// RequestPasswordReset asks the provider to mail a reset code.
func (s *UserService) RequestPasswordReset(ctx context.Context, email string) error {
	return s.auth.SendPasswordReset(ctx, email)
}

// FetchFavorites reads the user's favorites subtree, returning an empty list
// on any error or absence.
func (s *UserService) FetchFavorites(ctx context.Context, userID string) []models.RecipeDetail {
	favorites, err := s.remote.GetFavorites(ctx, userID)
	if err != nil {
		log.Printf("fetch favorites: %v", err)
		return []models.RecipeDetail{}
	}
	return favorites
}

func (s *UserService) SaveFavorite(ctx context.Context, userID string, detail models.RecipeDetail) error {
	return s.remote.PutFavorite(ctx, userID, detail)
}

func (s *UserService) RemoveFavorite(ctx context.Context, userID string, recipeID int) error {
	return s.remote.DeleteFavorite(ctx, userID, recipeID)
}

// RefreshSessionIfNeeded re-authenticates the current session with the given
// credentials. False when no session exists or re-auth fails.
func (s *UserService) RefreshSessionIfNeeded(ctx context.Context, email, password string) bool {
	if s.Session() == nil {
		return false
	}
	sess, err := s.auth.SignIn(ctx, email, password)
	if err != nil {
		log.Printf("refresh session: %v", err)
		return false
	}
	s.setSession(sess)
	return true
}

// FetchProfile mirrors the provider's account record, nil on any failure.
func (s *UserService) FetchProfile(ctx context.Context) *models.User {
	sess := s.Session()
	if sess == nil {
		return nil
	}
	user, err := s.auth.Lookup(ctx, sess.IDToken)
	if err != nil {
		log.Printf("fetch profile: %v", err)
		return nil
	}
	return user
}

func (s *UserService) Session() *AuthSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session
}

func (s *UserService) setSession(sess *AuthSession) {
	s.mu.Lock()
	s.session = sess
	s.mu.Unlock()
}
