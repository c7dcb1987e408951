package inmem

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"sync"
	"time"

	"go.llib.dev/frameless/adapter/memory"
	"go.llib.dev/frameless/pkg/logger"
	"go.llib.dev/frameless/pkg/logging"
	"golang.org/x/crypto/argon2"

	"scenes/domain/auth"
)

const (
	saltBytes = 16
	keyBytes  = 32
)

// AuthService authenticates against accounts held in memory.
// Passwords are kept as argon2id hashes with a per-account salt.
type AuthService struct {
	// Memory [optional] is the backing store of the default account repository.
	//
	// default: memory.NewMemory()
	Memory *memory.Memory
	// Accounts [optional] replaces the default account repository.
	Accounts auth.AccountRepository
	// MemoryKiB [optional] is the argon2 memory cost.
	//
	// default: 64 MiB
	MemoryKiB uint32
	// Latency [optional] delays every Authenticate call.
	Latency time.Duration

	init     sync.Once
	accounts auth.AccountRepository
}

var _ auth.Authenticator = (*AuthService)(nil)

// Register adds an account for the given credentials.
func (s *AuthService) Register(ctx context.Context, c auth.Credentials) error {
	salt := make([]byte, saltBytes)
	if _, err := rand.Read(salt); err != nil {
		return err
	}
	acc := auth.Account{
		Email:        c.Email,
		Salt:         salt,
		PasswordHash: s.hash(c.Password, salt),
	}
	if err := s.repository().Create(ctx, &acc); err != nil {
		return fmt.Errorf("register %q: %w", c.Email, err)
	}
	logger.Debug(ctx, "account registered", logging.Field("email", c.Email))
	return nil
}

func (s *AuthService) Authenticate(ctx context.Context, c auth.Credentials) (bool, error) {
	if err := wait(ctx, s.Latency); err != nil {
		return false, err
	}
	acc, found, err := s.repository().FindByID(ctx, c.Email)
	if err != nil {
		return false, err
	}
	if !found {
		logger.Debug(ctx, "unknown account", logging.Field("email", c.Email))
		return false, nil
	}
	ok := subtle.ConstantTimeCompare(acc.PasswordHash, s.hash(c.Password, acc.Salt)) == 1
	return ok, nil
}

func (s *AuthService) hash(password string, salt []byte) []byte {
	return argon2.IDKey([]byte(password), salt, 1, s.memoryKiB(), 1, keyBytes)
}

func (s *AuthService) memoryKiB() uint32 {
	if s.MemoryKiB == 0 {
		return 64 * 1024
	}
	return s.MemoryKiB
}

func (s *AuthService) repository() auth.AccountRepository {
	s.init.Do(func() {
		if s.Accounts != nil {
			s.accounts = s.Accounts
			return
		}
		s.accounts = memory.NewRepository[auth.Account, string](s.Memory)
	})
	return s.accounts
}
