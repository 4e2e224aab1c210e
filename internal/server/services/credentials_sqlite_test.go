package services

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/logging"
	"github.com/dmitrijs2005/gophauth/internal/server/auth"
	"github.com/dmitrijs2005/gophauth/internal/server/repositories/repomanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newSQLiteService(t *testing.T) (*CredentialService, *auth.Signer) {
	t.Helper()
	ctx := context.Background()

	m, err := repomanager.New("sqlite")
	require.NoError(t, err)

	db, err := repomanager.Open(ctx, m, filepath.Join(t.TempDir(), "auth.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, m.RunMigrations(ctx, db))

	signer, err := auth.NewSigner([]byte("integration-secret"), time.Hour)
	require.NoError(t, err)

	svc, err := NewCredentialService(db, m, auth.NewBcryptHasher(bcrypt.MinCost), signer, logging.Nop{})
	require.NoError(t, err)
	return svc, signer
}

func TestCredentialService_SessionScenario(t *testing.T) {
	svc, signer := newSQLiteService(t)
	ctx := context.Background()

	reg, err := svc.Register(ctx, "Ana", "a@x.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "Ana", reg.User.Name)
	assert.Equal(t, "a@x.com", reg.User.Email)
	assert.NotEmpty(t, reg.User.ID)
	t1 := reg.Token

	login, err := svc.Login(ctx, "a@x.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, reg.User, login.User)
	t2 := login.Token

	verified, err := svc.VerifyToken(ctx, t2)
	require.NoError(t, err)
	assert.Equal(t, reg.User, verified.User)
	t3 := verified.Token
	assert.NotEqual(t, t2, t3)
	assert.NotEqual(t, t1, t3)

	p, err := signer.Verify(t3)
	require.NoError(t, err)
	assert.Equal(t, reg.User, p)

	_, err = svc.Register(ctx, "Ana again", "a@x.com", "other-pass")
	assert.ErrorIs(t, err, ErrDuplicateUser)

	_, err = svc.Login(ctx, "a@x.com", "wrong")
	require.Error(t, err)
	assert.Equal(t, "invalid email or password", AsError(err).Message())

	_, err = svc.Login(ctx, "b@x.com", "secret1")
	require.Error(t, err)
	assert.Equal(t, "invalid email or password", AsError(err).Message())

	_, err = svc.VerifyToken(ctx, corruptSignature(t3))
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestCredentialService_EmailIsCaseSensitive(t *testing.T) {
	svc, _ := newSQLiteService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Ana", "a@x.com", "secret1")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "Ana", "A@x.com", "secret1")
	require.NoError(t, err)

	_, err = svc.Login(ctx, "A@X.COM", "secret1")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

// corruptSignature replaces one character in the middle of the signature.
func corruptSignature(token string) string {
	b := []byte(token)
	i := strings.LastIndex(token, ".") + 5
	if b[i] == 'A' {
		b[i] = 'B'
	} else {
		b[i] = 'A'
	}
	return string(b)
}
