package user

import (
	"context"
	"crypto/md5"
	"fmt"
	"io"
	c "securecrop/internal/core/domain/common"
	"sort"
	"sync"
	"time"
)

type FakePasswordHasher struct{}

func NewFakePasswordHasher() *FakePasswordHasher {
	return &FakePasswordHasher{}
}

func (h *FakePasswordHasher) HashPassword(password RawPassword) (PasswordHash, error) {
	hash := md5.New()
	io.WriteString(hash, string(password))
	return PasswordHash(fmt.Sprintf("%x", hash.Sum(nil))), nil
}

func (h *FakePasswordHasher) ValidatePassword(password RawPassword, hash PasswordHash) bool {
	actualHash, err := h.HashPassword(password)
	if err != nil {
		return false
	}
	return actualHash == hash
}

type FakeSessionTokenGenerator struct {
	Token string
}

func NewFakeSessionTokenGenerator(token string) *FakeSessionTokenGenerator {
	return &FakeSessionTokenGenerator{Token: token}
}

func (g *FakeSessionTokenGenerator) GenerateSessionToken() SessionToken {
	return SessionToken(g.Token)
}

type FakePasswordResetTokenGenerator struct {
	Token string
}

func NewFakePasswordResetTokenGenerator(token string) *FakePasswordResetTokenGenerator {
	return &FakePasswordResetTokenGenerator{Token: token}
}

func (g *FakePasswordResetTokenGenerator) GeneratePasswordResetToken() PasswordResetToken {
	return PasswordResetToken(g.Token)
}

type FakeUserRepository struct {
	Users       []User
	ReturnError bool
	lock        sync.Mutex
}

func NewFakeUserRepository() *FakeUserRepository {
	return &FakeUserRepository{Users: make([]User, 0, 10)}
}

func (r *FakeUserRepository) Create(ctx context.Context, input CreateUserInput) (u User, err error) {
	if r.ReturnError {
		return u, fmt.Errorf("could not create user %v", input)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	maxID := ID(0)
	for _, u := range r.Users {
		if u.Email == input.Email {
			return u, ErrEmailAlreadyExists
		}
		if u.ID > maxID {
			maxID = u.ID
		}
	}
	u = User{
		ID:                 maxID + 1,
		Email:              input.Email,
		Username:           input.Username,
		PasswordHash:       input.PasswordHash,
		Role:               input.Role,
		IsActive:           input.IsActive,
		CreatedAt:          input.CreatedAt,
		ReceiveEmailAlerts: input.ReceiveEmailAlerts,
		ReceiveSMSAlerts:   input.ReceiveSMSAlerts,
	}
	r.Users = append(r.Users, u)
	return u, nil
}

func (r *FakeUserRepository) GetByID(ctx context.Context, id ID) (u User, err error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, u := range r.Users {
		if u.ID == id {
			return u, nil
		}
	}
	return u, ErrUserDoesNotExist
}

func (r *FakeUserRepository) GetByEmail(ctx context.Context, email c.Email) (u User, err error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, u := range r.Users {
		if u.Email == email {
			return u, nil
		}
	}
	return u, ErrUserDoesNotExist
}

func (r *FakeUserRepository) List(ctx context.Context) ([]User, error) {
	if r.ReturnError {
		return nil, fmt.Errorf("could not list users")
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	users := make([]User, len(r.Users))
	copy(users, r.Users)
	sort.Slice(users, func(i, j int) bool { return users[i].CreatedAt.After(users[j].CreatedAt) })
	return users, nil
}

func (r *FakeUserRepository) Update(ctx context.Context, input UpdateUserInput) (u User, err error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix, u := range r.Users {
		if u.ID != input.ID {
			continue
		}
		if input.DoUsernameUpdate {
			r.Users[ix].Username = input.Username
		}
		if input.DoPhoneNumberUpdate {
			r.Users[ix].PhoneNumber = input.PhoneNumber
		}
		if input.DoLocationUpdate {
			r.Users[ix].LocationLat = input.LocationLat
			r.Users[ix].LocationLon = input.LocationLon
		}
		if input.DoReceiveEmailAlertsUpdate {
			r.Users[ix].ReceiveEmailAlerts = input.ReceiveEmailAlerts
		}
		if input.DoReceiveSMSAlertsUpdate {
			r.Users[ix].ReceiveSMSAlerts = input.ReceiveSMSAlerts
		}
		return r.Users[ix], nil
	}
	return u, ErrUserDoesNotExist
}

func (r *FakeUserRepository) SetPassword(ctx context.Context, id ID, password PasswordHash) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix, u := range r.Users {
		if u.ID == id {
			r.Users[ix].PasswordHash = password
			return nil
		}
	}
	return ErrUserDoesNotExist
}

func (r *FakeUserRepository) SetLastLogin(ctx context.Context, id ID, at time.Time) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix, u := range r.Users {
		if u.ID == id {
			r.Users[ix].LastLoginAt = c.NewOptional(at, true)
			return nil
		}
	}
	return ErrUserDoesNotExist
}

func (r *FakeUserRepository) SetActive(ctx context.Context, id ID, isActive bool) (u User, err error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix, u := range r.Users {
		if u.ID == id {
			r.Users[ix].IsActive = isActive
			return r.Users[ix], nil
		}
	}
	return u, ErrUserDoesNotExist
}

type FakeSessionRepository struct {
	UserIdByToken  map[SessionToken]ID
	UserRepository UserRepository
	ReturnError    bool
	lock           sync.Mutex
}

func NewFakeSessionRepository(userRepository UserRepository) *FakeSessionRepository {
	return &FakeSessionRepository{
		UserIdByToken:  make(map[SessionToken]ID),
		UserRepository: userRepository,
	}
}

func (r *FakeSessionRepository) Create(ctx context.Context, input CreateSessionInput) error {
	if r.ReturnError {
		return fmt.Errorf("could not create session %v", input)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	r.UserIdByToken[input.Token] = input.UserID
	return nil
}

func (r *FakeSessionRepository) GetUserByToken(ctx context.Context, token SessionToken) (u User, err error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	userId, ok := r.UserIdByToken[token]
	if !ok {
		return u, ErrUserDoesNotExist
	}
	return r.UserRepository.GetByID(ctx, userId)
}

func (r *FakeSessionRepository) Delete(ctx context.Context, token SessionToken) (ID, error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	userID, ok := r.UserIdByToken[token]
	if !ok {
		return ID(0), ErrSessionDoesNotExist
	}
	delete(r.UserIdByToken, token)
	return userID, nil
}

type FakePasswordResetRepository struct {
	Tokens      []PasswordReset
	ReturnError bool
	lock        sync.Mutex
}

func NewFakePasswordResetRepository() *FakePasswordResetRepository {
	return &FakePasswordResetRepository{Tokens: make([]PasswordReset, 0, 10)}
}

func (r *FakePasswordResetRepository) Create(
	ctx context.Context,
	input CreatePasswordResetInput,
) (p PasswordReset, err error) {
	if r.ReturnError {
		return p, fmt.Errorf("could not create password reset token %v", input)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	p = PasswordReset{
		Token:     input.Token,
		UserID:    input.UserID,
		CreatedAt: input.CreatedAt,
		ExpiresAt: input.ExpiresAt,
	}
	r.Tokens = append(r.Tokens, p)
	return p, nil
}

func (r *FakePasswordResetRepository) GetByToken(
	ctx context.Context,
	token PasswordResetToken,
) (p PasswordReset, err error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, p := range r.Tokens {
		if p.Token == token {
			return p, nil
		}
	}
	return p, ErrPasswordResetTokenDoesNotExist
}

func (r *FakePasswordResetRepository) GetByTokenWithLock(
	ctx context.Context,
	token PasswordResetToken,
) (PasswordReset, error) {
	return r.GetByToken(ctx, token)
}

func (r *FakePasswordResetRepository) MarkUsed(ctx context.Context, token PasswordResetToken) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix, p := range r.Tokens {
		if p.Token == token {
			r.Tokens[ix].Used = true
			return nil
		}
	}
	return ErrPasswordResetTokenDoesNotExist
}

func (r *FakePasswordResetRepository) MarkAllUsedForUser(ctx context.Context, userID ID) (int64, error) {
	if r.ReturnError {
		return 0, fmt.Errorf("could not mark tokens used for user %d", userID)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	var count int64
	for ix, p := range r.Tokens {
		if p.UserID == userID && !p.Used {
			r.Tokens[ix].Used = true
			count++
		}
	}
	return count, nil
}

func (r *FakePasswordResetRepository) ActiveTokens(userID ID, now time.Time) []PasswordReset {
	r.lock.Lock()
	defer r.lock.Unlock()
	active := make([]PasswordReset, 0)
	for _, p := range r.Tokens {
		if p.UserID == userID && p.IsValid(now) {
			active = append(active, p)
		}
	}
	return active
}

type FakePasswordResetTokenSender struct {
	Sent        []PasswordResetToken
	SentTo      []User
	ReturnError bool
	lock        sync.Mutex
}

func NewFakePasswordResetTokenSender() *FakePasswordResetTokenSender {
	return &FakePasswordResetTokenSender{}
}

func (s *FakePasswordResetTokenSender) SendPasswordResetToken(
	ctx context.Context,
	user User,
	token PasswordResetToken,
) error {
	if s.ReturnError {
		return fmt.Errorf("could not send password reset token")
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	s.Sent = append(s.Sent, token)
	s.SentTo = append(s.SentTo, user)
	return nil
}

func (s *FakePasswordResetTokenSender) SentCount() int {
	s.lock.Lock()
	defer s.lock.Unlock()
	return len(s.Sent)
}
