package service

import (
	"context"
	"errors"
	"strings"

	"community-backend/internal/domains/account"
	"community-backend/internal/shared/apperr"
	"community-backend/internal/shared/pagination"
)

// accountService orchestrates lookup, authorization, normalization, conflict
// translation and state transition for every account operation.
type accountService struct {
	repo  account.Repository
	codec account.CredentialCodec
}

func NewAccountService(repo account.Repository, codec account.CredentialCodec) account.Service {
	return &accountService{
		repo:  repo,
		codec: codec,
	}
}

// ========================================
// READS
// ========================================

func (s *accountService) Get(ctx context.Context, p account.Principal, id int64) (*account.AccountResponse, error) {
	if !account.CanAct(p, id) {
		return nil, apperr.New(apperr.KindForbidden, "not allowed to access this account")
	}

	a, err := s.fetch(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := a.ToResponse()
	return &resp, nil
}

func (s *accountService) List(ctx context.Context, p account.Principal, limit int) ([]account.AccountResponse, error) {
	if !p.HasRole(account.RoleAdmin) {
		return nil, apperr.New(apperr.KindForbidden, "admin role required")
	}

	safeLimit, err := pagination.ClampLimit(limit, account.MaxListLimit)
	if err != nil {
		return nil, err
	}

	accounts, err := s.repo.FindAll(ctx, safeLimit)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	result := make([]account.AccountResponse, len(accounts))
	for i := range accounts {
		result[i] = accounts[i].ToResponse()
	}
	return result, nil
}

// ========================================
// CREATION & LOGIN (pre-identity, no policy gate)
// ========================================

func (s *accountService) Create(ctx context.Context, req account.CreateAccountRequest) (int64, error) {
	// Normalize first so length and format rules see the stored values,
	// not whatever padding the client sent around them.
	req.Username = account.NormalizeIdentifier(req.Username)
	req.Nickname = account.NormalizeIdentifier(req.Nickname)
	req.Email = account.NormalizeEmail(req.Email)

	if err := req.Validate(); err != nil {
		return 0, apperr.Wrap(apperr.KindInvalidRequest, err.Error(), err)
	}

	hash, err := s.codec.Encode(req.Password)
	if err != nil {
		return 0, apperr.Internal(err)
	}

	a := &account.Account{
		Username:     req.Username,
		PasswordHash: hash,
		Nickname:     req.Nickname,
		Email:        req.Email,
	}

	id, err := s.repo.Save(ctx, a)
	if err != nil {
		var conflict *account.ConflictError
		if errors.As(err, &conflict) {
			return 0, apperr.Wrap(apperr.KindConflict, conflictMessage(conflict.Constraint), err)
		}
		return 0, apperr.Internal(err)
	}

	return id, nil
}

func (s *accountService) Login(ctx context.Context, req account.LoginRequest) (*account.Session, error) {
	if err := req.Validate(); err != nil {
		return nil, apperr.Wrap(apperr.KindInvalidRequest, err.Error(), err)
	}

	username := account.NormalizeIdentifier(req.Username)

	a, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, account.ErrNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "account not found")
		}
		return nil, apperr.Internal(err)
	}

	// Credential mismatches are client input errors throughout this design,
	// not access-control denials.
	if !s.codec.Verify(req.Password, a.PasswordHash) {
		return nil, apperr.New(apperr.KindInvalidRequest, "incorrect password")
	}

	roles, err := s.repo.FindRolesByAccountID(ctx, a.ID)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	return &account.Session{AccountID: a.ID, Roles: roles}, nil
}

// ========================================
// FIELD TRANSITIONS
// ========================================

func (s *accountService) ChangeNickname(ctx context.Context, p account.Principal, id int64, nickname string) error {
	if !account.CanAct(p, id) {
		return apperr.New(apperr.KindForbidden, "not allowed to access this account")
	}

	nickname = account.NormalizeIdentifier(nickname)

	current, err := s.fetch(ctx, id)
	if err != nil {
		return err
	}

	// Same value after normalization: nothing to do.
	if current.Nickname == nickname {
		return nil
	}

	rows, err := s.repo.UpdateNickname(ctx, id, nickname)
	if err != nil {
		return apperr.Internal(err)
	}
	if rows == 0 {
		// Deleted between fetch and update.
		return apperr.New(apperr.KindNotFound, "account not found")
	}

	return nil
}

func (s *accountService) ChangePassword(ctx context.Context, p account.Principal, id int64, password string) error {
	if !account.CanAct(p, id) {
		return apperr.New(apperr.KindForbidden, "not allowed to access this account")
	}

	current, err := s.fetch(ctx, id)
	if err != nil {
		return err
	}

	// Reusing the current password is an illegal transition, not a no-op.
	if s.codec.Verify(password, current.PasswordHash) {
		return apperr.New(apperr.KindInvalidRequest, "new password must differ from the current password")
	}

	hash, err := s.codec.Encode(password)
	if err != nil {
		return apperr.Internal(err)
	}

	rows, err := s.repo.UpdatePassword(ctx, id, hash)
	if err != nil {
		return apperr.Internal(err)
	}
	if rows != 1 {
		// Existence was confirmed above, so anything but exactly one row is
		// a store anomaly rather than an ordinary race.
		return apperr.Newf(apperr.KindInternal, "password change failed")
	}

	return nil
}

func (s *accountService) ChangeEmail(ctx context.Context, p account.Principal, id int64, email *string) error {
	if !account.CanAct(p, id) {
		return apperr.New(apperr.KindForbidden, "not allowed to access this account")
	}

	normalized := account.NormalizeEmail(email)

	rows, err := s.repo.UpdateEmail(ctx, id, normalized)
	if err != nil {
		var conflict *account.ConflictError
		if errors.As(err, &conflict) {
			msg := "email already in use"
			if normalized != nil {
				msg += ": " + *normalized
			}
			return apperr.Wrap(apperr.KindConflict, msg, err)
		}
		return apperr.Internal(err)
	}
	if rows == 0 {
		return apperr.New(apperr.KindNotFound, "account not found")
	}

	return nil
}

func (s *accountService) GrantRole(ctx context.Context, p account.Principal, id int64, role string) error {
	if !p.HasRole(account.RoleAdmin) {
		return apperr.New(apperr.KindForbidden, "admin role required")
	}

	req := account.GrantRoleRequest{Role: role}
	if err := req.Validate(); err != nil {
		return apperr.Wrap(apperr.KindInvalidRequest, err.Error(), err)
	}

	if _, err := s.fetch(ctx, id); err != nil {
		return err
	}

	if err := s.repo.AddRole(ctx, id, role); err != nil {
		return apperr.Internal(err)
	}

	return nil
}

func (s *accountService) Delete(ctx context.Context, p account.Principal, id int64) error {
	if !account.CanAct(p, id) {
		return apperr.New(apperr.KindForbidden, "not allowed to access this account")
	}

	rows, err := s.repo.DeleteByID(ctx, id)
	if err != nil {
		return apperr.Internal(err)
	}
	if rows == 0 {
		return apperr.New(apperr.KindNotFound, "account not found")
	}

	return nil
}

// ========================================
// HELPERS
// ========================================

// fetch loads an account and translates the store's not-found signal.
func (s *accountService) fetch(ctx context.Context, id int64) (*account.Account, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, account.ErrNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "account not found")
		}
		return nil, apperr.Internal(err)
	}
	return a, nil
}

// conflictMessage picks the client message for a uniqueness violation by the
// constraint or column name the store reported. An unrecognized key gets the
// generic message.
func conflictMessage(constraint string) string {
	switch {
	case strings.Contains(constraint, "username"):
		return "username already in use"
	case strings.Contains(constraint, "email"):
		return "email already in use"
	default:
		return "value already in use"
	}
}
